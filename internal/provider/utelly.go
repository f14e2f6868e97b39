package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"whereto/internal/httputil"
	"whereto/internal/media"
)

// utellyLocation is one "where to watch" entry in a Utelly response.
type utellyLocation struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
}

// utellyResponse covers both the idlookup and the term lookup endpoints,
// which share a shape.
type utellyResponse struct {
	Results []struct {
		Locations []utellyLocation `json:"locations"`
	} `json:"results"`
}

// utelly holds the pieces shared by both Utelly-backed adapters.
type utelly struct {
	base    string
	country string
	client  *http.Client
	log     *slog.Logger
}

func (u *utelly) offers(ctx context.Context, url string) []media.Offer {
	body, err := httputil.GetJSON(ctx, u.client, url)
	if err != nil {
		u.log.Warn("utelly request failed", "error", err)
		return nil
	}

	var parsed utellyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		u.log.Warn("utelly returned malformed JSON", "error", err)
		return nil
	}

	var offers []media.Offer
	for _, result := range parsed.Results {
		for _, loc := range result.Locations {
			name := loc.Name
			if name == "" {
				name = loc.DisplayName
			}
			if offer, ok := makeOffer(u.log, name, loc.URL, "", "", ""); ok {
				offers = append(offers, offer)
			}
		}
	}
	return offers
}

// UtellyIDLookup resolves availability by external catalog id. It is the
// first step of the fallback chain and is skipped for identities without
// an external id.
type UtellyIDLookup struct {
	utelly
}

// NewUtellyIDLookup creates the id-lookup adapter.
func NewUtellyIDLookup(base, country string, client *http.Client, log *slog.Logger) *UtellyIDLookup {
	return &UtellyIDLookup{utelly{
		base:    base,
		country: country,
		client:  client,
		log:     log.With("adapter", "utelly_id"),
	}}
}

func (a *UtellyIDLookup) Name() string { return "utelly_id" }

// Fetch looks up locations by IMDb id.
func (a *UtellyIDLookup) Fetch(ctx context.Context, identity media.Identity) []media.Offer {
	if a.base == "" || identity.IMDBID == "" {
		return nil
	}
	if err := httputil.ValidateID(identity.IMDBID); err != nil {
		a.log.Warn("refusing malformed external id", "error", err)
		return nil
	}

	url := fmt.Sprintf("%s/idlookup?source_id=%s&source=imdb&country=%s",
		a.base, identity.IMDBID, a.country)
	return a.offers(ctx, url)
}

// UtellyTitleSearch resolves availability by free-text title search. It
// works without an external id and sits after the structured sources
// adapter in the fallback chain.
type UtellyTitleSearch struct {
	utelly
}

// NewUtellyTitleSearch creates the title-search adapter.
func NewUtellyTitleSearch(base, country string, client *http.Client, log *slog.Logger) *UtellyTitleSearch {
	return &UtellyTitleSearch{utelly{
		base:    base,
		country: country,
		client:  client,
		log:     log.With("adapter", "utelly_title"),
	}}
}

func (a *UtellyTitleSearch) Name() string { return "utelly_title" }

// Fetch looks up locations by title.
func (a *UtellyTitleSearch) Fetch(ctx context.Context, identity media.Identity) []media.Offer {
	if a.base == "" || identity.Title == "" {
		return nil
	}

	url := fmt.Sprintf("%s/lookup?term=%s&country=%s",
		a.base, httputil.EncodeQuery(identity.Title), a.country)
	return a.offers(ctx, url)
}
