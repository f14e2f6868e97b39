// Package media defines shared types for the whereto application.
package media

import (
	"encoding/json"
	"strings"
	"time"
)

// MediaKind represents whether content is a movie or TV series.
type MediaKind int

const (
	Movie MediaKind = iota
	Series
)

func (k MediaKind) String() string {
	switch k {
	case Movie:
		return "movie"
	case Series:
		return "tv"
	default:
		return "unknown"
	}
}

// ParseKind converts a user-supplied kind string to a MediaKind.
func ParseKind(s string) MediaKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tv", "series", "show", "shows":
		return Series
	default:
		return Movie
	}
}

// Identity describes the content the caller wants to watch.
// It is supplied by the caller and never mutated.
type Identity struct {
	ID          string    // caller-assigned id, may be empty
	Title       string    // display title
	Kind        MediaKind // Movie or Series
	IMDBID      string    // external catalog id (e.g. "tt1234567"), optional
	ReleaseYear string    // optional
}

// CacheKey returns the lookup key for this identity: the external catalog
// id when present, otherwise the normalized title plus media kind.
func (id Identity) CacheKey() string {
	if id.IMDBID != "" {
		return id.Kind.String() + ":" + id.IMDBID
	}
	key := id.ID
	if key == "" {
		key = strings.ToLower(strings.Join(strings.Fields(id.Title), " "))
	}
	return id.Kind.String() + ":" + key
}

// OfferType classifies how an offer is monetized.
type OfferType int

const (
	Subscription OfferType = iota
	Free
	Rental
	Purchase
)

func (t OfferType) String() string {
	switch t {
	case Subscription:
		return "subscription"
	case Free:
		return "free"
	case Rental:
		return "rental"
	case Purchase:
		return "purchase"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the offer type as its string form so cached and
// emitted JSON stays readable.
func (t OfferType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OfferType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "free":
		*t = Free
	case "rental":
		*t = Rental
	case "purchase":
		*t = Purchase
	default:
		*t = Subscription
	}
	return nil
}

// PlatformDescriptor is the registry entry an offer points at.
// Static after process start; Priority is a globally unique tie-breaker
// (lower = preferred).
type PlatformDescriptor struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	Icon              string `json:"icon"`
	SearchURLTemplate string `json:"search_url_template"` // %s is the escaped title
	Subscription      bool   `json:"subscription"`
	Rental            bool   `json:"rental"`
	Priority          int    `json:"priority"`
}

// Offer is one canonical way to watch a title on one platform.
type Offer struct {
	Platform PlatformDescriptor `json:"platform"`
	URL      string             `json:"url"`
	Type     OfferType          `json:"type"`
	Price    string             `json:"price,omitempty"`
	Quality  string             `json:"quality,omitempty"`
}

// Confidence tags whether a result holds real upstream data or the
// synthetic search fallback.
type Confidence string

const (
	ConfidenceReal     Confidence = "real"
	ConfidenceFallback Confidence = "fallback"
)

// ResolutionResult is a ranked, non-empty offer list for one identity.
type ResolutionResult struct {
	Identity   Identity   `json:"-"`
	Offers     []Offer    `json:"offers"`
	Confidence Confidence `json:"confidence"`
	ResolvedAt time.Time  `json:"resolved_at"`
}

// Profile holds the user's platform preferences and usage history.
type Profile struct {
	PreferredPlatforms []string       // ordered, earlier = more preferred
	UsageCounts        map[string]int // platform id -> launch count
}
