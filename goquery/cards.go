package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"homescout"
)

// cardSelectors locate candidate listing cards, in fallback order. Layout
// variants are mutually exclusive, so the first selector with any matches
// wins.
var cardSelectors = []string{
	`[data-testid="property-card"]`,
	`li[data-testid="result-card"]`,
	`div.property-card`,
	`li.component_property-card`,
	`article[class*="listing"]`,
}

// Field patterns matched against a card's aggregate text.
var (
	priceRe   = regexp.MustCompile(`\$\s?[0-9][0-9,]*(?:\.[0-9]+)?\+?`)
	bedsRe    = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*(?:bds?|beds?)\b`)
	bathsRe   = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?\+?)\s*(?:ba(?:th)?s?)\b`)
	sqftRe    = regexp.MustCompile(`(?i)([0-9][0-9,]*)\s*(?:sq\.?\s?ft|sqft)\b`)
	lotRe     = regexp.MustCompile(`(?i)([0-9][0-9,.]*\s*(?:acres?|sq\.?\s?ft|sqft))\s+lot\b`)
	streetRe  = regexp.MustCompile(`^[0-9]{1,6}\s+\S+`)
	zipRe     = regexp.MustCompile(`\b[0-9]{5}(?:-[0-9]{4})?\b`)
	detailRe  = regexp.MustCompile(`(?i)/(?:realestateandhomes-detail|homedetails|property|listing)s?/`)
)

// Compile-time interface verification.
var _ Strategy = (*CardStrategy)(nil)

// CardStrategy is the markup fallback: it scans the document for listing
// cards and pattern-matches fields out of their text. It runs only when
// neither embedded representation yields data.
type CardStrategy struct{}

// NewCardStrategy creates a new CardStrategy.
func NewCardStrategy() *CardStrategy {
	return &CardStrategy{}
}

// Name returns the strategy's identifier.
func (s *CardStrategy) Name() string {
	return "cards"
}

// Extract returns one raw listing per card that yields at least one of
// price, address, or listing URL.
func (s *CardStrategy) Extract(doc *goquery.Document) []homescout.RawListing {
	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var raws []homescout.RawListing
	cards.Each(func(_ int, card *goquery.Selection) {
		if raw := listingFromCard(card); raw != nil {
			raws = append(raws, raw)
		}
	})
	return raws
}

func listingFromCard(card *goquery.Selection) homescout.RawListing {
	raw := homescout.RawListing{}
	text := card.Text()

	if m := priceRe.FindString(text); m != "" {
		raw["price"] = strings.ReplaceAll(m, " ", "")
	}
	if m := bedsRe.FindStringSubmatch(text); m != nil {
		raw["beds"] = m[1]
	}
	if m := bathsRe.FindStringSubmatch(text); m != nil {
		raw["baths"] = m[1]
	}
	if m := lotRe.FindStringSubmatch(text); m != nil {
		raw["lot_size"] = strings.Join(strings.Fields(m[1]), " ")
	}
	// The interior sqft pattern also matches a sqft-labeled lot badge, so
	// strip the lot fragment before probing.
	interior := text
	if m := lotRe.FindString(text); m != "" {
		interior = strings.Replace(text, m, "", 1)
	}
	if m := sqftRe.FindStringSubmatch(interior); m != nil {
		raw["sqft"] = m[1]
	}

	if addr := firstAddressFragment(card); addr != "" {
		raw["address"] = addr
	}

	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if detailRe.MatchString(href) {
			raw["url"] = href
			return false
		}
		return true
	})

	if img := card.Find("img").First(); img.Length() > 0 {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			src, _ = img.Attr("data-src")
		}
		if src != "" {
			raw["image_url"] = src
		}
	}

	// A card without any of the identity-bearing fields is decoration.
	if raw["price"] == nil && raw["address"] == nil && raw["url"] == nil {
		return nil
	}
	return raw
}

// firstAddressFragment returns the first short text fragment in the card
// that looks like a street line or carries a ZIP code.
func firstAddressFragment(card *goquery.Selection) string {
	var addr string
	card.Find("address, div, span, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		// Leaf-ish nodes only: skip containers that aggregate the whole card.
		if sel.Children().Length() > 2 {
			return true
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) > 120 {
			return true
		}
		// Stat badges ("3 bds 2 ba 1,500 sqft") start with a digit too.
		if bedsRe.MatchString(text) || bathsRe.MatchString(text) || sqftRe.MatchString(text) {
			return true
		}
		if streetRe.MatchString(text) || zipRe.MatchString(text) {
			addr = strings.Join(strings.Fields(text), " ")
			return false
		}
		return true
	})
	return addr
}
