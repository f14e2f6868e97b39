package provider

import (
	"io"
	"log/slog"
	"testing"

	"whereto/internal/media"
	"whereto/internal/platform"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOfferTypeFor(t *testing.T) {
	sub, _ := platform.Lookup("netflix")       // subscription flag
	rental, _ := platform.Lookup("vudu")       // rental flag only
	free, _ := platform.Lookup("tubi")         // no flags
	both, _ := platform.Lookup("amazon_prime") // subscription + rental

	tests := []struct {
		name       string
		structured string
		url        string
		desc       media.PlatformDescriptor
		want       media.OfferType
	}{
		{"structured sub wins", "sub", "https://x.example/rent/123", sub, media.Subscription},
		{"structured flatrate", "flatrate", "", sub, media.Subscription},
		{"structured free", "free", "", sub, media.Free},
		{"structured rent", "rent", "", sub, media.Rental},
		{"structured buy", "buy", "", sub, media.Purchase},
		{"url rent heuristic", "", "https://x.example/rent/123", sub, media.Rental},
		{"url buy heuristic", "", "https://x.example/buy/123", sub, media.Purchase},
		{"flags subscription", "", "https://x.example/watch/123", sub, media.Subscription},
		{"flags rental", "", "https://x.example/watch/123", rental, media.Rental},
		{"flags free", "", "https://x.example/watch/123", free, media.Free},
		{"flags prefer subscription", "", "https://x.example/watch/123", both, media.Subscription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offerTypeFor(tt.structured, tt.url, tt.desc); got != tt.want {
				t.Errorf("offerTypeFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMakeOfferDropsUnknownPlatform(t *testing.T) {
	if _, ok := makeOffer(testLogger(), "Obscure Screening Room", "https://x.example/1", "", "", ""); ok {
		t.Fatal("unknown platform must be dropped, not fabricated")
	}
}

func TestMakeOfferDropsEmptyURL(t *testing.T) {
	if _, ok := makeOffer(testLogger(), "netflix", "", "", "", ""); ok {
		t.Fatal("offer without a URL must be dropped")
	}
}

func TestMakeOfferNormalizesName(t *testing.T) {
	offer, ok := makeOffer(testLogger(), "hbomax", "https://play.max.com/x", "", "", "")
	if !ok {
		t.Fatal("hbomax should resolve via the alias table")
	}
	if offer.Platform.ID != "hbo_max" {
		t.Errorf("platform = %q, want hbo_max", offer.Platform.ID)
	}
	if offer.Type != media.Subscription {
		t.Errorf("type = %v, want subscription", offer.Type)
	}
}
