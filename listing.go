package homescout

import (
	"context"
	"strings"
)

// Listing is one canonical real-estate record emitted by the pipeline.
// Every field is independently optional; the empty string means the source
// page did not carry that field. A missing field never invalidates the
// record, but a record with none of price, address, and URL is noise and is
// dropped before it reaches the dedup tracker (see HasContent).
type Listing struct {
	Price        string `json:"price"`
	Beds         string `json:"beds"`
	Baths        string `json:"baths"`
	Sqft         string `json:"sqft"`
	LotSize      string `json:"lot_size"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	PropertyType string `json:"property_type"`
	ListingBy    string `json:"listing_by"`
	ImageURL     string `json:"image_url"`
	URL          string `json:"url"`
}

// IdentityKey returns the value used to decide whether two listings refer
// to the same property: the listing URL when present, otherwise the
// normalized full address. Returns "" when neither is available; such
// records are never admitted and never recorded as seen.
//
// Two genuinely different listings can share an address (multi-unit
// buildings without a URL); the key makes no attempt to disambiguate them.
func (l *Listing) IdentityKey() string {
	if l.URL != "" {
		return l.URL
	}
	if l.Address == "" {
		return ""
	}
	parts := []string{l.Address, l.City, l.State, l.ZipCode}
	for i, p := range parts {
		parts[i] = strings.Join(strings.Fields(strings.ToLower(p)), " ")
	}
	return strings.Join(parts, "|")
}

// HasContent reports whether the listing carries at least one of price,
// address, or URL.
func (l *Listing) HasContent() bool {
	return l.Price != "" || l.Address != "" || l.URL != ""
}

// RawListing is the untyped, source-shaped object produced directly by
// whichever extraction strategy matched. Its shape varies per strategy; it
// is consumed only by Normalize and never persisted.
type RawListing map[string]any

// ListingWriter persists batches of admitted listings. WriteListings is
// called once per crawled page, possibly with an empty batch.
type ListingWriter interface {
	WriteListings(ctx context.Context, listings []*Listing) error
	Close() error
}
