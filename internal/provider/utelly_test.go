package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"whereto/internal/media"
)

const utellyPayload = `{
  "results": [
    {
      "locations": [
        {"name": "netflix", "display_name": "Netflix", "url": "https://netflix.com/x", "icon": "n.png"},
        {"name": "hbomax", "display_name": "HBO Max", "url": "https://hbomax.example/y", "icon": "h.png"},
        {"name": "mystery_stream", "display_name": "Mystery Stream", "url": "https://mystery.example/z", "icon": "m.png"}
      ]
    }
  ]
}`

func TestUtellyIDLookup(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Write([]byte(utellyPayload))
	}))
	defer srv.Close()

	a := NewUtellyIDLookup(srv.URL, "us", srv.Client(), testLogger())
	offers := a.Fetch(context.Background(), media.Identity{
		Title:  "Example Show",
		Kind:   media.Series,
		IMDBID: "tt1234567",
	})

	if want := "/idlookup?source_id=tt1234567&source=imdb&country=us"; gotPath != want {
		t.Errorf("request = %q, want %q", gotPath, want)
	}

	// The unknown platform is dropped; the two known ones survive.
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(offers))
	}
	if offers[0].Platform.ID != "netflix" {
		t.Errorf("offers[0] = %q, want netflix", offers[0].Platform.ID)
	}
	if offers[1].Platform.ID != "hbo_max" {
		t.Errorf("offers[1] = %q, want hbo_max", offers[1].Platform.ID)
	}
}

func TestUtellyIDLookupSkipsWithoutID(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := NewUtellyIDLookup(srv.URL, "us", srv.Client(), testLogger())
	if offers := a.Fetch(context.Background(), media.Identity{Title: "No ID Here"}); offers != nil {
		t.Errorf("expected nil offers, got %v", offers)
	}
	if called {
		t.Error("adapter must not call upstream without an external id")
	}
}

func TestUtellyTitleSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookup" {
			t.Errorf("path = %q, want /lookup", r.URL.Path)
		}
		if term := r.URL.Query().Get("term"); term != "Example Show" {
			t.Errorf("term = %q", term)
		}
		w.Write([]byte(utellyPayload))
	}))
	defer srv.Close()

	a := NewUtellyTitleSearch(srv.URL, "us", srv.Client(), testLogger())
	offers := a.Fetch(context.Background(), media.Identity{Title: "Example Show"})
	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(offers))
	}
}

func TestUtellyFailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream 500", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed JSON", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [`))
		}},
		{"empty results", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": []}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := NewUtellyIDLookup(srv.URL, "us", srv.Client(), testLogger())
			offers := a.Fetch(context.Background(), media.Identity{Title: "X", IMDBID: "tt0000001"})
			if len(offers) != 0 {
				t.Errorf("got %d offers, want 0", len(offers))
			}
		})
	}
}

func TestUtellyRejectsMalformedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for a malformed id")
	}))
	defer srv.Close()

	a := NewUtellyIDLookup(srv.URL, "us", srv.Client(), testLogger())
	offers := a.Fetch(context.Background(), media.Identity{Title: "X", IMDBID: "tt1; drop table"})
	if len(offers) != 0 {
		t.Errorf("got %d offers, want 0", len(offers))
	}
}
