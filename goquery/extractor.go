// Package goquery implements listing extraction and pagination planning on
// top of CSS-selector document parsing.
//
// Extraction runs an ordered set of strategies against each result page:
// the embedded application-state blob first, then linked-data annotations,
// then raw markup cards. Page structure on the target site drifts between
// deployments, so every strategy treats malformed input as "no match"
// rather than an error.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"homescout"
)

// Strategy extracts raw listings from a parsed result page. A strategy
// that finds nothing returns an empty slice; it never fails the page.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document) []homescout.RawListing
}

// Compile-time interface verification.
var _ homescout.ListingExtractor = (*Extractor)(nil)

// Extractor tries strategies in fixed priority order and stops at the
// first one that yields results. When both the embedded-state and
// linked-data representations are present on a page only the
// higher-priority one is used; results are never merged.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor creates an Extractor with the given strategies. With no
// arguments it uses the default chain: embedded state, linked data,
// markup cards.
func NewExtractor(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = []Strategy{
			NewStateStrategy(),
			NewLinkedDataStrategy(),
			NewCardStrategy(),
		}
	}
	return &Extractor{strategies: strategies}
}

// Extract returns the raw listings found in the page HTML. Unparseable
// HTML or pages without listing data return an empty slice.
func (e *Extractor) Extract(html string) []homescout.RawListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	for _, s := range e.strategies {
		if raw := s.Extract(doc); len(raw) > 0 {
			return raw
		}
	}
	return nil
}
