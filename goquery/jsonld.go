package goquery

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"

	"homescout"
)

// linkedDataTypes are the schema.org item types recognized as real-estate
// listings.
var linkedDataTypes = map[string]bool{
	"RealEstateListing":     true,
	"SingleFamilyResidence": true,
	"Residence":             true,
	"Apartment":             true,
	"ApartmentComplex":      true,
	"House":                 true,
}

// Compile-time interface verification.
var _ Strategy = (*LinkedDataStrategy)(nil)

// LinkedDataStrategy extracts listings from application/ld+json annotation
// blocks. Each block is parsed independently so one malformed annotation
// does not abort the page.
type LinkedDataStrategy struct{}

// NewLinkedDataStrategy creates a new LinkedDataStrategy.
func NewLinkedDataStrategy() *LinkedDataStrategy {
	return &LinkedDataStrategy{}
}

// Name returns the strategy's identifier.
func (s *LinkedDataStrategy) Name() string {
	return "jsonld"
}

// Extract scans all linked-data blocks on the page and maps items of
// recognized real-estate types into raw listings.
func (s *LinkedDataStrategy) Extract(doc *goquery.Document) []homescout.RawListing {
	var raws []homescout.RawListing

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return // skip malformed block
		}
		for _, item := range linkedDataItems(payload) {
			typ, _ := item["@type"].(string)
			if !linkedDataTypes[typ] {
				continue
			}
			raws = append(raws, listingFromLinkedData(item))
		}
	})

	return raws
}

// linkedDataItems flattens a parsed block into its item objects: a single
// object, a top-level array, or an @graph container.
func linkedDataItems(payload any) []map[string]any {
	switch t := payload.(type) {
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			return linkedDataItems(graph)
		}
		return []map[string]any{t}
	case []any:
		var items []map[string]any
		for _, v := range t {
			if m, ok := v.(map[string]any); ok {
				items = append(items, m)
			}
		}
		return items
	}
	return nil
}

// listingFromLinkedData maps a schema.org item into the flat raw-listing
// shape the normalizer's first-chain accessors read directly.
func listingFromLinkedData(item map[string]any) homescout.RawListing {
	raw := homescout.RawListing{}

	if typ, ok := item["@type"].(string); ok {
		raw["property_type"] = typ
	}
	if u, ok := item["url"].(string); ok {
		raw["url"] = u
	}

	switch img := item["image"].(type) {
	case string:
		raw["image_url"] = img
	case []any:
		if len(img) > 0 {
			if s, ok := img[0].(string); ok {
				raw["image_url"] = s
			}
		}
	}

	switch addr := item["address"].(type) {
	case string:
		raw["address"] = addr
	case map[string]any:
		setIfPresent(raw, "address", addr["streetAddress"])
		setIfPresent(raw, "city", addr["addressLocality"])
		setIfPresent(raw, "state", addr["addressRegion"])
		setIfPresent(raw, "zip_code", addr["postalCode"])
	}

	if offers, ok := item["offers"].(map[string]any); ok {
		setIfPresent(raw, "price", offers["price"])
		if by, ok := offers["offeredBy"].(map[string]any); ok {
			setIfPresent(raw, "listing_by", by["name"])
		}
	}

	setIfPresent(raw, "beds", item["numberOfBedrooms"])
	setIfPresent(raw, "baths", item["numberOfBathroomsTotal"])
	if size, ok := item["floorSize"].(map[string]any); ok {
		setIfPresent(raw, "sqft", size["value"])
	}

	return raw
}

func setIfPresent(raw homescout.RawListing, key string, v any) {
	if v != nil {
		raw[key] = v
	}
}
