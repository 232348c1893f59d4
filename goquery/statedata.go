package goquery

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"

	"homescout"
)

// stateScriptSelector locates the script element carrying the serialized
// application state the site renders from.
const stateScriptSelector = "script#__NEXT_DATA__"

// stateListingPaths are the key paths at which the listings array has been
// observed inside the state blob, in probe order. The upstream schema
// varies between deployments, so several nesting locations are tried.
var stateListingPaths = [][]string{
	{"props", "pageProps", "searchResults", "home_search", "results"},
	{"props", "pageProps", "searchResults", "homes"},
	{"props", "pageProps", "properties"},
}

// Compile-time interface verification.
var _ Strategy = (*StateStrategy)(nil)

// StateStrategy extracts listings from the embedded application-state
// blob. It is the highest-priority strategy: when the blob is present and
// carries a listings array it describes every result on the page, already
// structured.
type StateStrategy struct{}

// NewStateStrategy creates a new StateStrategy.
func NewStateStrategy() *StateStrategy {
	return &StateStrategy{}
}

// Name returns the strategy's identifier.
func (s *StateStrategy) Name() string {
	return "statedata"
}

// Extract parses the state script and probes the known key paths for a
// listings array. Parse failures and unexpected shapes degrade to no
// match, not an error.
func (s *StateStrategy) Extract(doc *goquery.Document) []homescout.RawListing {
	blob := doc.Find(stateScriptSelector).First().Text()
	if blob == "" {
		return nil
	}

	var state map[string]any
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil
	}

	for _, path := range stateListingPaths {
		items, ok := digList(state, path...)
		if !ok {
			continue
		}
		var raws []homescout.RawListing
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				raws = append(raws, homescout.RawListing(m))
			}
		}
		if len(raws) > 0 {
			return raws
		}
	}
	return nil
}

// digList walks a key path through nested objects and returns the list at
// its end, if any.
func digList(root map[string]any, keys ...string) ([]any, bool) {
	var cur any = root
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = m[k]
	}
	list, ok := cur.([]any)
	return list, ok
}
