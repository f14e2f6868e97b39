package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"whereto/internal/media"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	platformStyle = lipgloss.NewStyle().Bold(true)
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	noteStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// OfferLine formats one offer for listing or picking.
func OfferLine(offer media.Offer) string {
	line := fmt.Sprintf("%s  %s", platformStyle.Render(offer.Platform.DisplayName),
		typeStyle.Render(offer.Type.String()))
	if offer.Price != "" {
		line += "  " + offer.Price
	}
	if offer.Quality != "" {
		line += "  " + offer.Quality
	}
	return line
}

// RenderOffers formats a full resolution result for display.
func RenderOffers(result *media.ResolutionResult) string {
	var b strings.Builder

	header := result.Identity.Title
	if result.Identity.ReleaseYear != "" {
		header += " (" + result.Identity.ReleaseYear + ")"
	}
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render(header),
		noteStyle.Render(result.Identity.Kind.String()))

	for i, offer := range result.Offers {
		fmt.Fprintf(&b, "  %d. %s\n     %s\n", i+1, OfferLine(offer), dimStyle.Render(offer.URL))
	}

	if result.Confidence == media.ConfidenceFallback {
		fmt.Fprintf(&b, "\n%s\n", noteStyle.Render("No availability data found; showing a web search instead."))
	}
	return b.String()
}

// RenderPlatforms formats a platform list, marking preferred entries.
func RenderPlatforms(platforms []media.PlatformDescriptor, preferred []string) string {
	prefSet := make(map[string]bool, len(preferred))
	for _, id := range preferred {
		prefSet[id] = true
	}

	var b strings.Builder
	for _, p := range platforms {
		marker := " "
		if prefSet[p.ID] {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s %s  %s\n", marker, platformStyle.Render(p.DisplayName), dimStyle.Render(p.ID))
	}
	if len(preferred) > 0 {
		b.WriteString(noteStyle.Render("\n * preferred") + "\n")
	}
	return b.String()
}
