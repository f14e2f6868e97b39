package platform

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"netflix", "netflix"},
		{"Netflix", "netflix"},
		{"  Netflix  ", "netflix"},
		{"amazon_prime_video", "amazon_prime"},
		{"Prime Video", "amazon_prime"},
		{"amazon_video", "amazon_prime"},
		{"hbomax", "hbo_max"},
		{"HBO Max", "hbo_max"},
		{"appletv", "apple_tv_plus"},
		{"Apple TV+", "apple_tv_plus"},
		{"google_play", "youtube"},
		{"Disney+", "disney_plus"},
		{"Paramount+", "paramount_plus"},
		{"Pluto TV", "pluto_tv"},
		{"Tubi TV", "tubi"},
		// Unmatched names pass through unchanged.
		{"criterion_channel", "criterion_channel"},
		{"Some New Service", "some_new_service"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// Every alias must land on a real registry key, so an adapter-producible
// raw name either resolves or is intentionally dropped.
func TestAliasTargetsAreKnown(t *testing.T) {
	for raw, canonical := range aliases {
		if _, ok := Lookup(canonical); !ok {
			t.Errorf("alias %q -> %q points at an unknown platform", raw, canonical)
		}
	}
}

func TestAliasKeysDontShadowRegistry(t *testing.T) {
	for raw := range aliases {
		if _, direct := registry[raw]; direct {
			t.Errorf("alias key %q shadows a registry entry", raw)
		}
	}
}
