package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"whereto/internal/httputil"
	"whereto/internal/media"
)

// watchmodeSource is one structured availability entry. The type field
// distinguishes sub/free/rent/buy, so no URL heuristics are needed here.
type watchmodeSource struct {
	SourceID   int         `json:"source_id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Region     string      `json:"region"`
	WebURL     string      `json:"web_url"`
	IOSURL     string      `json:"ios_url"`
	AndroidURL string      `json:"android_url"`
	Price      json.Number `json:"price"`
	Format     string      `json:"format"`
}

type watchmodeResponse struct {
	Sources []watchmodeSource `json:"sources"`
}

// parseWatchmodeSources accepts both response shapes: the sources endpoint
// returns a bare JSON array, while some proxied deployments wrap it in an
// object.
func parseWatchmodeSources(body []byte) ([]watchmodeSource, error) {
	var bare []watchmodeSource
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped watchmodeResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Sources, nil
}

// Watchmode fetches structured per-region source listings by external
// catalog id.
type Watchmode struct {
	base    string
	apiKey  string
	country string
	client  *http.Client
	log     *slog.Logger
}

// NewWatchmode creates the structured-sources adapter.
func NewWatchmode(base, apiKey, country string, client *http.Client, log *slog.Logger) *Watchmode {
	return &Watchmode{
		base:    base,
		apiKey:  apiKey,
		country: country,
		client:  client,
		log:     log.With("adapter", "watchmode"),
	}
}

func (a *Watchmode) Name() string { return "watchmode" }

// Fetch returns offers from the structured sources listing. Requires an
// external catalog id and an API key.
func (a *Watchmode) Fetch(ctx context.Context, identity media.Identity) []media.Offer {
	if a.base == "" || a.apiKey == "" || identity.IMDBID == "" {
		return nil
	}
	if err := httputil.ValidateID(identity.IMDBID); err != nil {
		a.log.Warn("refusing malformed external id", "error", err)
		return nil
	}

	url := fmt.Sprintf("%s/title/%s/sources/?region=%s&apiKey=%s",
		a.base, identity.IMDBID, strings.ToUpper(a.country), a.apiKey)

	body, err := httputil.GetJSON(ctx, a.client, url)
	if err != nil {
		a.log.Warn("watchmode request failed", "error", err)
		return nil
	}

	sources, err := parseWatchmodeSources(body)
	if err != nil {
		a.log.Warn("watchmode returned malformed JSON", "error", err)
		return nil
	}

	var offers []media.Offer
	for _, src := range sources {
		if src.Region != "" && !strings.EqualFold(src.Region, a.country) {
			continue
		}
		price := ""
		if src.Price != "" && src.Price != "0" {
			price = src.Price.String()
		}
		if offer, ok := makeOffer(a.log, src.Name, src.WebURL, src.Type, price, src.Format); ok {
			offers = append(offers, offer)
		}
	}
	return offers
}
