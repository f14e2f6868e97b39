package rank

import (
	"reflect"
	"testing"

	"whereto/internal/media"
	"whereto/internal/platform"
)

func offer(t *testing.T, platformID string, typ media.OfferType) media.Offer {
	t.Helper()
	desc, ok := platform.Lookup(platformID)
	if !ok {
		t.Fatalf("unknown platform %q in test setup", platformID)
	}
	return media.Offer{Platform: desc, URL: "https://example.com/" + platformID, Type: typ}
}

func ids(offers []media.Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Platform.ID
	}
	return out
}

func TestPreferredBeforeEverything(t *testing.T) {
	// A preferred rental outranks a non-preferred subscription.
	offers := []media.Offer{
		offer(t, "netflix", media.Subscription),
		offer(t, "hbo_max", media.Rental),
	}
	profile := media.Profile{PreferredPlatforms: []string{"hbo_max"}}

	got := ids(Offers(offers, profile))
	want := []string{"hbo_max", "netflix"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestPreferredOrderedByPreferencePosition(t *testing.T) {
	offers := []media.Offer{
		offer(t, "netflix", media.Subscription),
		offer(t, "hulu", media.Subscription),
		offer(t, "peacock", media.Subscription),
	}
	profile := media.Profile{PreferredPlatforms: []string{"peacock", "hulu"}}

	got := ids(Offers(offers, profile))
	want := []string{"peacock", "hulu", "netflix"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestTypeOrdering(t *testing.T) {
	offers := []media.Offer{
		offer(t, "vudu", media.Purchase),
		offer(t, "youtube", media.Rental),
		offer(t, "tubi", media.Free),
		offer(t, "peacock", media.Subscription),
	}

	got := ids(Offers(offers, media.Profile{}))
	want := []string{"peacock", "tubi", "youtube", "vudu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestPriorityTieBreak(t *testing.T) {
	offers := []media.Offer{
		offer(t, "hulu", media.Subscription),
		offer(t, "netflix", media.Subscription),
		offer(t, "disney_plus", media.Subscription),
	}

	got := ids(Offers(offers, media.Profile{}))
	want := []string{"netflix", "disney_plus", "hulu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	offers := []media.Offer{
		offer(t, "vudu", media.Purchase),
		offer(t, "netflix", media.Subscription),
		offer(t, "hulu", media.Subscription),
		offer(t, "tubi", media.Free),
		offer(t, "hbo_max", media.Subscription),
	}
	profile := media.Profile{PreferredPlatforms: []string{"tubi", "hulu"}}

	first := ids(Offers(offers, profile))
	for i := 0; i < 10; i++ {
		if got := ids(Offers(offers, profile)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, first run produced %v", i, got, first)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	offers := []media.Offer{
		offer(t, "vudu", media.Purchase),
		offer(t, "netflix", media.Subscription),
	}
	Offers(offers, media.Profile{})
	if offers[0].Platform.ID != "vudu" {
		t.Error("input slice was reordered")
	}
}

func TestRecommended(t *testing.T) {
	profile := media.Profile{
		PreferredPlatforms: []string{"hbo_max"},
		UsageCounts:        map[string]int{"hulu": 9, "netflix": 3},
	}

	got := Recommended(platform.All(), profile, 3)
	if len(got) != 3 {
		t.Fatalf("got %d platforms, want 3", len(got))
	}
	// Preferred beats any usage count; then usage descending.
	if got[0].ID != "hbo_max" {
		t.Errorf("got[0] = %q, want hbo_max", got[0].ID)
	}
	if got[1].ID != "hulu" {
		t.Errorf("got[1] = %q, want hulu", got[1].ID)
	}
	if got[2].ID != "netflix" {
		t.Errorf("got[2] = %q, want netflix", got[2].ID)
	}
}

func TestRecommendedZeroUsageFallsBackToPriority(t *testing.T) {
	got := Recommended(platform.All(), media.Profile{}, 2)
	if got[0].ID != "netflix" || got[1].ID != "amazon_prime" {
		t.Errorf("got %s, %s; want netflix, amazon_prime", got[0].ID, got[1].ID)
	}
}
