// Package provider implements the upstream availability adapters. Each
// adapter talks to one upstream source and converts its raw response into
// canonical offers; upstream failures surface as an empty offer list, never
// as an error, so the resolver treats "no data" and "provider down" alike.
package provider

import (
	"context"
	"log/slog"
	"strings"

	"whereto/internal/media"
	"whereto/internal/platform"
)

// Adapter is the contract every upstream source implements.
type Adapter interface {
	// Name identifies the adapter in logs.
	Name() string

	// Fetch returns canonical offers for the identity. An empty slice
	// means either no availability or an upstream failure; the caller
	// is not allowed to distinguish the two.
	Fetch(ctx context.Context, identity media.Identity) []media.Offer
}

// offerTypeFor decides an offer's monetization type. A structured upstream
// type field wins; the URL substring heuristic is second; the platform's
// capability flags are the last resort.
func offerTypeFor(structured, rawURL string, desc media.PlatformDescriptor) media.OfferType {
	switch strings.ToLower(structured) {
	case "sub", "subscription", "flatrate":
		return media.Subscription
	case "free", "tve":
		return media.Free
	case "rent", "rental":
		return media.Rental
	case "buy", "purchase":
		return media.Purchase
	}

	lower := strings.ToLower(rawURL)
	if strings.Contains(lower, "rent") {
		return media.Rental
	}
	if strings.Contains(lower, "buy") {
		return media.Purchase
	}

	switch {
	case desc.Subscription:
		return media.Subscription
	case desc.Rental:
		return media.Rental
	default:
		return media.Free
	}
}

// makeOffer converts one upstream candidate into a canonical offer.
// Unrecognized platform names are dropped, never fabricated.
func makeOffer(log *slog.Logger, rawName, rawURL, structuredType, price, quality string) (media.Offer, bool) {
	key := platform.Normalize(rawName)
	desc, ok := platform.Lookup(key)
	if !ok {
		log.Warn("dropping offer for unknown platform", "raw_name", rawName, "key", key)
		return media.Offer{}, false
	}
	if rawURL == "" {
		log.Debug("dropping offer without a URL", "platform", desc.ID)
		return media.Offer{}, false
	}
	return media.Offer{
		Platform: desc,
		URL:      rawURL,
		Type:     offerTypeFor(structuredType, rawURL, desc),
		Price:    price,
		Quality:  quality,
	}, true
}
