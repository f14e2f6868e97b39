package provider

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scrapedOffer is one raw candidate pulled from a buybox row before
// normalization. Kind carries the row's structured grouping when present
// ("free", "rent", "buy"; empty for plain streaming rows).
type scrapedOffer struct {
	Name string
	URL  string
	Kind string
}

// parseFirstTitleLink extracts the first search result's title-page path.
func parseFirstTitleLink(doc *goquery.Document) string {
	return doc.Find(".title-list-row a.title-list-row__link").First().AttrOr("href", "")
}

// parseBuyboxOffers extracts raw offers from a title page's buybox rows.
func parseBuyboxOffers(doc *goquery.Document) []scrapedOffer {
	var offers []scrapedOffer

	doc.Find("div.buybox-row").Each(func(_ int, row *goquery.Selection) {
		kind := buyboxKind(row.AttrOr("class", ""))
		row.Find("a.offer").Each(func(_ int, link *goquery.Selection) {
			href := link.AttrOr("href", "")
			name := strings.TrimSpace(link.Find("img").AttrOr("alt", ""))
			if href == "" || name == "" {
				return
			}
			offers = append(offers, scrapedOffer{Name: name, URL: href, Kind: kind})
		})
	})

	return offers
}

// buyboxKind maps a buybox row's class list to a structured offer kind.
// Classes are matched as whole tokens so "buybox-row" never reads as "buy".
func buyboxKind(classes string) string {
	for _, class := range strings.Fields(classes) {
		switch class {
		case "rent", "buy", "free":
			return class
		}
	}
	return ""
}
