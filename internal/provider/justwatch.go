package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"whereto/internal/httputil"
	"whereto/internal/media"
)

// JustWatch scrapes the public search pages as a last-chance source before
// the resolver falls back to a synthetic search offer. It is config-gated
// and sits at the end of the fallback chain.
type JustWatch struct {
	base    string // e.g. "justwatch.com"
	country string
	client  *http.Client
	log     *slog.Logger
}

// NewJustWatch creates the page-scrape adapter.
func NewJustWatch(base, country string, client *http.Client, log *slog.Logger) *JustWatch {
	return &JustWatch{
		base:    base,
		country: country,
		client:  client,
		log:     log.With("adapter", "justwatch"),
	}
}

func (a *JustWatch) Name() string { return "justwatch" }

func (a *JustWatch) baseURL() string {
	if strings.HasPrefix(a.base, "http://") || strings.HasPrefix(a.base, "https://") {
		return a.base
	}
	return "https://" + a.base
}

// Fetch scrapes the search page for the first matching title, then scrapes
// that title's buybox rows into offers.
func (a *JustWatch) Fetch(ctx context.Context, identity media.Identity) []media.Offer {
	if a.base == "" || identity.Title == "" {
		return nil
	}

	searchURL := fmt.Sprintf("%s/%s/search?q=%s",
		a.baseURL(), a.country, httputil.EncodeQuery(identity.Title))

	doc, err := a.fetchDocument(ctx, searchURL)
	if err != nil {
		a.log.Warn("scraping search page failed", "error", err)
		return nil
	}

	titlePath := parseFirstTitleLink(doc)
	if titlePath == "" {
		a.log.Debug("no scrape results", "title", identity.Title)
		return nil
	}
	if !strings.HasPrefix(titlePath, "http") {
		titlePath = a.baseURL() + titlePath
	}

	titleDoc, err := a.fetchDocument(ctx, titlePath)
	if err != nil {
		a.log.Warn("scraping title page failed", "error", err)
		return nil
	}

	var offers []media.Offer
	for _, raw := range parseBuyboxOffers(titleDoc) {
		if offer, ok := makeOffer(a.log, raw.Name, raw.URL, raw.Kind, "", ""); ok {
			offers = append(offers, offer)
		}
	}
	return offers
}

// fetchDocument fetches a URL and parses it into a goquery Document.
func (a *JustWatch) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := httputil.Get(ctx, a.client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}
