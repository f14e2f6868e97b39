package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://api.example.com/lookup", false},
		{"http://127.0.0.1:8080/lookup", false},
		{"ftp://example.com/file", true},
		{"://bad", true},
		{"https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"tt1234567", false},
		{"abc_DEF-123", false},
		{"", true},
		{"tt1234567; rm -rf /", true},
		{"../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Bear", "The+Bear"},
		{"  spaced   out  ", "spaced+out"},
		{"50/50", "50%2F50"},
	}

	for _, tt := range tests {
		if got := EncodeQuery(tt.in); got != tt.want {
			t.Errorf("EncodeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := GetJSON(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("GetJSON() error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q", body)
	}
}

func TestGetJSONNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := GetJSON(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
