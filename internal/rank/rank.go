// Package rank orders canonical offer sets. Rank is a pure function so
// resolution results are reproducible across calls and safe to cache.
package rank

import (
	"sort"

	"whereto/internal/media"
)

// typeOrder places subscription before free before rental before purchase.
var typeOrder = map[media.OfferType]int{
	media.Subscription: 0,
	media.Free:         1,
	media.Rental:       2,
	media.Purchase:     3,
}

// Offers sorts offers by, in order: preferred platforms (earlier
// preference wins), offer type, then registry priority. Registry
// priorities are unique, so the ordering is total and the output is
// stable for identical input.
func Offers(offers []media.Offer, profile media.Profile) []media.Offer {
	prefIndex := make(map[string]int, len(profile.PreferredPlatforms))
	for i, id := range profile.PreferredPlatforms {
		if _, seen := prefIndex[id]; !seen {
			prefIndex[id] = i
		}
	}

	ranked := make([]media.Offer, len(offers))
	copy(ranked, offers)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, iPref := prefIndex[ranked[i].Platform.ID]
		pj, jPref := prefIndex[ranked[j].Platform.ID]

		if iPref != jPref {
			return iPref
		}
		if iPref && jPref && pi != pj {
			return pi < pj
		}

		ti, tj := typeOrder[ranked[i].Type], typeOrder[ranked[j].Type]
		if ti != tj {
			return ti < tj
		}

		return ranked[i].Platform.Priority < ranked[j].Platform.Priority
	})

	return ranked
}

// Recommended orders registry platforms by usage count, with preferred
// platforms boosted ahead of everything merely used. Used for
// title-independent suggestions.
func Recommended(all []media.PlatformDescriptor, profile media.Profile, topN int) []media.PlatformDescriptor {
	// Large enough that any preferred platform outranks any usage count.
	const preferredBoost = 1 << 20

	score := func(d media.PlatformDescriptor) int {
		s := profile.UsageCounts[d.ID]
		for _, id := range profile.PreferredPlatforms {
			if id == d.ID {
				s += preferredBoost
				break
			}
		}
		return s
	}

	ranked := make([]media.PlatformDescriptor, len(all))
	copy(ranked, all)

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].Priority < ranked[j].Priority
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
