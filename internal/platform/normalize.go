package platform

import "strings"

// aliases maps upstream naming variants onto registry keys. Adding a
// platform means one registry entry plus its alias list here; the
// normalize tests verify every alias target is a known key.
var aliases = map[string]string{
	"amazon_prime_video": "amazon_prime",
	"prime_video":        "amazon_prime",
	"amazon_video":       "amazon_prime",
	"amazon":             "amazon_prime",
	"amazon_instant":     "amazon_prime",
	"hbomax":             "hbo_max",
	"hbo":                "hbo_max",
	"max":                "hbo_max",
	"appletv":            "apple_tv_plus",
	"apple_tv":           "apple_tv_plus",
	"apple_itunes":       "apple_tv_plus",
	"itunes":             "apple_tv_plus",
	"google_play":        "youtube",
	"google_play_movies": "youtube",
	"youtube_premium":    "youtube",
	"disney":             "disney_plus",
	"disneyplus":         "disney_plus",
	"paramount":          "paramount_plus",
	"paramountplus":      "paramount_plus",
	"peacock_premium":    "peacock",
	"peacock_free":       "peacock",
	"plutotv":            "pluto_tv",
	"pluto":              "pluto_tv",
	"tubitv":             "tubi",
	"tubi_tv":            "tubi",
	"vudu_free":          "vudu",
	"fandango_at_home":   "vudu",
	"netflixkids":        "netflix",
	"netflix_kids":       "netflix",
	"hulu_plus":          "hulu",
	"hulu_with_live_tv":  "hulu",
}

// Normalize folds an upstream platform name onto a registry key.
// Unmatched names pass through unchanged and will miss Lookup; that is
// the designed unknown-platform drop path, not an error.
func Normalize(rawName string) string {
	key := strings.ToLower(strings.TrimSpace(rawName))
	key = strings.NewReplacer(" ", "_", "-", "_", ".", "_", "+", "_plus").Replace(key)
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}
