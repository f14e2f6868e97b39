// Package resolver turns a media identity into a ranked, deduplicated,
// never-empty list of watch offers. It owns the fallback chain across the
// provider adapters, the resolution cache, and the synthetic search offer
// used when every adapter comes back empty.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"whereto/internal/browser"
	"whereto/internal/httputil"
	"whereto/internal/media"
	"whereto/internal/platform"
	"whereto/internal/provider"
	"whereto/internal/rank"
	"whereto/internal/store"
)

// Service resolves media identities to offers. All dependencies are
// injected; there is no package-level state.
type Service struct {
	adapters []provider.Adapter
	store    *store.Store
	ttl      time.Duration
	log      *slog.Logger
	group    singleflight.Group

	// OpenURL launches a URL in the user's browser. Overridable in tests.
	OpenURL func(url string) error
}

// New creates a resolution service. Adapters are tried in slice order;
// the first non-empty result wins.
func New(adapters []provider.Adapter, st *store.Store, ttl time.Duration, log *slog.Logger) *Service {
	launcher := &browser.Launcher{}
	return &Service{
		adapters: adapters,
		store:    st,
		ttl:      ttl,
		log:      log.With("component", "resolver"),
		OpenURL:  launcher.Open,
	}
}

// Resolve returns a ranked offer list for the identity. It never fails:
// the worst case is a single synthetic web-search offer. Concurrent calls
// for the same key share one upstream round.
func (s *Service) Resolve(ctx context.Context, identity media.Identity) *media.ResolutionResult {
	key := identity.CacheKey()
	log := s.log.With("trace_id", uuid.NewString(), "key", key)

	if cached, ok := s.store.CacheGet(ctx, key, s.ttl); ok {
		log.Debug("cache hit", "offers", len(cached.Offers))
		cached.Identity = identity
		return cached
	}

	v, _, shared := s.group.Do(key, func() (interface{}, error) {
		return s.resolveUncached(ctx, identity, log), nil
	})
	if shared {
		log.Debug("joined in-flight resolution")
	}

	// Coalesced callers all receive the same pointer; copy before tagging
	// so each caller gets its own identity.
	result := *v.(*media.ResolutionResult)
	result.Identity = identity
	return &result
}

func (s *Service) resolveUncached(ctx context.Context, identity media.Identity, log *slog.Logger) *media.ResolutionResult {
	var offers []media.Offer
	for _, adapter := range s.adapters {
		fetched := adapter.Fetch(ctx, identity)
		if len(fetched) == 0 {
			continue
		}
		offers = dedupe(fetched)
		log.Debug("adapter produced offers", "adapter", adapter.Name(), "offers", len(offers))
		break
	}

	confidence := media.ConfidenceReal
	if len(offers) == 0 {
		offers = []media.Offer{syntheticSearchOffer(identity)}
		confidence = media.ConfidenceFallback
		log.Debug("no upstream offers, synthesized search fallback")
	}

	profile, err := s.store.Profile(ctx)
	if err != nil {
		log.Warn("profile unavailable, ranking without preferences", "error", err)
		profile = media.Profile{}
	}

	result := &media.ResolutionResult{
		Identity:   identity,
		Offers:     rank.Offers(offers, profile),
		Confidence: confidence,
		ResolvedAt: time.Now().UTC(),
	}

	if err := s.store.CachePut(ctx, identity.CacheKey(), result); err != nil {
		log.Warn("caching result failed", "error", err)
	}
	return result
}

// dedupe keeps the first-seen offer per platform id.
func dedupe(offers []media.Offer) []media.Offer {
	seen := make(map[string]bool, len(offers))
	out := offers[:0:0]
	for _, offer := range offers {
		if seen[offer.Platform.ID] {
			continue
		}
		seen[offer.Platform.ID] = true
		out = append(out, offer)
	}
	return out
}

// syntheticSearchOffer builds the guaranteed last-resort offer: a web
// search for the title on the web_search pseudo-platform.
func syntheticSearchOffer(identity media.Identity) media.Offer {
	desc, _ := platform.Lookup(platform.WebSearchID)
	query := identity.Title
	if identity.ReleaseYear != "" {
		query += " " + identity.ReleaseYear
	}
	query += " watch online"
	return media.Offer{
		Platform: desc,
		URL:      fmt.Sprintf(desc.SearchURLTemplate, httputil.EncodeQuery(query)),
		Type:     media.Subscription,
	}
}

// LaunchBestOffer resolves the identity, opens the top-ranked offer in
// the browser, and records platform usage. Returns whether an offer
// (real or fallback) was opened.
func (s *Service) LaunchBestOffer(ctx context.Context, identity media.Identity) bool {
	result := s.Resolve(ctx, identity)
	if len(result.Offers) == 0 {
		return false
	}
	return s.Launch(ctx, result.Offers[0])
}

// Launch opens one offer and records usage for its platform. Usage is
// only counted for real platforms, not the web-search fallback.
func (s *Service) Launch(ctx context.Context, offer media.Offer) bool {
	if err := s.OpenURL(offer.URL); err != nil {
		s.log.Warn("opening offer failed", "platform", offer.Platform.ID, "error", err)
		return false
	}
	if offer.Platform.ID != platform.WebSearchID {
		if err := s.store.RecordUsage(ctx, offer.Platform.ID); err != nil {
			s.log.Warn("recording usage failed", "platform", offer.Platform.ID, "error", err)
		}
	}
	return true
}

// RecommendedPlatforms suggests platforms independent of any title, using
// usage counts boosted by explicit preference.
func (s *Service) RecommendedPlatforms(ctx context.Context, topN int) []media.PlatformDescriptor {
	profile, err := s.store.Profile(ctx)
	if err != nil {
		s.log.Warn("profile unavailable for recommendations", "error", err)
		profile = media.Profile{}
	}
	return rank.Recommended(platform.All(), profile, topN)
}
