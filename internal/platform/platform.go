// Package platform holds the static registry of known streaming platforms
// and the normalizer that maps upstream naming variants onto registry keys.
package platform

import (
	"sort"

	"whereto/internal/media"
)

// WebSearchID is the pseudo-platform used when no real offer exists.
// It is resolvable via Lookup but excluded from All.
const WebSearchID = "web_search"

// registry is the single source of truth for platform identity.
// Priorities are globally unique so ranking stays deterministic.
var registry = map[string]media.PlatformDescriptor{
	"netflix": {
		ID:                "netflix",
		DisplayName:       "Netflix",
		Icon:              "netflix.png",
		SearchURLTemplate: "https://www.netflix.com/search?q=%s",
		Subscription:      true,
		Priority:          1,
	},
	"amazon_prime": {
		ID:                "amazon_prime",
		DisplayName:       "Prime Video",
		Icon:              "prime.png",
		SearchURLTemplate: "https://www.amazon.com/s?k=%s&i=instant-video",
		Subscription:      true,
		Rental:            true,
		Priority:          2,
	},
	"disney_plus": {
		ID:                "disney_plus",
		DisplayName:       "Disney+",
		Icon:              "disneyplus.png",
		SearchURLTemplate: "https://www.disneyplus.com/search?q=%s",
		Subscription:      true,
		Priority:          3,
	},
	"hbo_max": {
		ID:                "hbo_max",
		DisplayName:       "Max",
		Icon:              "max.png",
		SearchURLTemplate: "https://play.max.com/search?q=%s",
		Subscription:      true,
		Priority:          4,
	},
	"hulu": {
		ID:                "hulu",
		DisplayName:       "Hulu",
		Icon:              "hulu.png",
		SearchURLTemplate: "https://www.hulu.com/search?q=%s",
		Subscription:      true,
		Priority:          5,
	},
	"apple_tv_plus": {
		ID:                "apple_tv_plus",
		DisplayName:       "Apple TV+",
		Icon:              "appletv.png",
		SearchURLTemplate: "https://tv.apple.com/search?term=%s",
		Subscription:      true,
		Rental:            true,
		Priority:          6,
	},
	"paramount_plus": {
		ID:                "paramount_plus",
		DisplayName:       "Paramount+",
		Icon:              "paramount.png",
		SearchURLTemplate: "https://www.paramountplus.com/search/?q=%s",
		Subscription:      true,
		Priority:          7,
	},
	"peacock": {
		ID:                "peacock",
		DisplayName:       "Peacock",
		Icon:              "peacock.png",
		SearchURLTemplate: "https://www.peacocktv.com/search?q=%s",
		Subscription:      true,
		Priority:          8,
	},
	"youtube": {
		ID:                "youtube",
		DisplayName:       "YouTube",
		Icon:              "youtube.png",
		SearchURLTemplate: "https://www.youtube.com/results?search_query=%s",
		Rental:            true,
		Priority:          9,
	},
	"tubi": {
		ID:                "tubi",
		DisplayName:       "Tubi",
		Icon:              "tubi.png",
		SearchURLTemplate: "https://tubitv.com/search/%s",
		Priority:          10,
	},
	"pluto_tv": {
		ID:                "pluto_tv",
		DisplayName:       "Pluto TV",
		Icon:              "pluto.png",
		SearchURLTemplate: "https://pluto.tv/search/details?query=%s",
		Priority:          11,
	},
	"vudu": {
		ID:                "vudu",
		DisplayName:       "Fandango at Home",
		Icon:              "vudu.png",
		SearchURLTemplate: "https://www.vudu.com/content/movies/search?searchString=%s",
		Rental:            true,
		Priority:          12,
	},
	WebSearchID: {
		ID:                WebSearchID,
		DisplayName:       "Search the web",
		Icon:              "search.png",
		SearchURLTemplate: "https://www.google.com/search?q=%s",
		Subscription:      true,
		Priority:          1000,
	},
}

// Lookup returns the descriptor for a platform key. A miss means the
// caller should drop the candidate, not fail.
func Lookup(key string) (media.PlatformDescriptor, bool) {
	desc, ok := registry[key]
	return desc, ok
}

// All returns every real platform, sorted by priority.
// The web-search pseudo-platform is excluded.
func All() []media.PlatformDescriptor {
	out := make([]media.PlatformDescriptor, 0, len(registry)-1)
	for id, desc := range registry {
		if id == WebSearchID {
			continue
		}
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
