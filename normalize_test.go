package homescout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homescout"
)

func TestNormalize_canonical_flat_fields_pass_through(t *testing.T) {
	t.Parallel()

	raw := homescout.RawListing{
		"price":         "$450,000",
		"beds":          "3",
		"baths":         "2",
		"sqft":          "1,500",
		"lot_size":      "4,800 sqft",
		"address":       "123 Main St",
		"city":          "Albany",
		"state":         "NY",
		"zip_code":      "12207",
		"property_type": "single_family",
		"listing_by":    "Acme Realty",
		"image_url":     "https://img.example.com/1.jpg",
		"url":           "https://www.example.com/property/1",
	}

	l := homescout.Normalize(raw, "https://www.example.com/search")

	assert.Equal(t, "$450,000", l.Price)
	assert.Equal(t, "3", l.Beds)
	assert.Equal(t, "2", l.Baths)
	assert.Equal(t, "1500", l.Sqft, "thousands separators are stripped")
	assert.Equal(t, "4,800 sqft", l.LotSize)
	assert.Equal(t, "123 Main St", l.Address)
	assert.Equal(t, "Albany", l.City)
	assert.Equal(t, "NY", l.State)
	assert.Equal(t, "12207", l.ZipCode)
	assert.Equal(t, "single_family", l.PropertyType)
	assert.Equal(t, "Acme Realty", l.ListingBy)
	assert.Equal(t, "https://img.example.com/1.jpg", l.ImageURL)
	assert.Equal(t, "https://www.example.com/property/1", l.URL)
}

func TestNormalize_embedded_state_shape(t *testing.T) {
	t.Parallel()

	raw := homescout.RawListing{
		"list_price": float64(675000),
		"permalink":  "/realestateandhomes-detail/123-Main-St_Albany_NY",
		"description": map[string]any{
			"beds":     float64(4),
			"baths":    float64(2.5),
			"sqft":     float64(2150),
			"lot_sqft": float64(6500),
			"type":     "townhouse",
		},
		"location": map[string]any{
			"address": map[string]any{
				"line":        "123 Main St",
				"city":        "Albany",
				"state_code":  "NY",
				"postal_code": "12207",
			},
		},
		"primary_photo": map[string]any{"href": "/photos/1.jpg"},
		"branding":      []any{map[string]any{"name": "Acme Realty"}},
	}

	l := homescout.Normalize(raw, "https://www.example.com/search/pg-2")

	assert.Equal(t, "$675,000", l.Price, "numeric price is formatted with grouping")
	assert.Equal(t, "4", l.Beds)
	assert.Equal(t, "2.5", l.Baths)
	assert.Equal(t, "2150", l.Sqft)
	assert.Equal(t, "6,500 sqft", l.LotSize)
	assert.Equal(t, "123 Main St", l.Address)
	assert.Equal(t, "Albany", l.City)
	assert.Equal(t, "NY", l.State)
	assert.Equal(t, "12207", l.ZipCode)
	assert.Equal(t, "townhouse", l.PropertyType)
	assert.Equal(t, "Acme Realty", l.ListingBy)
	assert.Equal(t, "https://www.example.com/photos/1.jpg", l.ImageURL)
	assert.Equal(t, "https://www.example.com/realestateandhomes-detail/123-Main-St_Albany_NY", l.URL)
}

func TestNormalize_fallback_chain_first_non_null_wins(t *testing.T) {
	t.Parallel()

	raw := homescout.RawListing{
		"price":      "$500,000",
		"list_price": float64(123),
	}

	l := homescout.Normalize(raw, "https://www.example.com/")

	assert.Equal(t, "$500,000", l.Price, "formatted string field outranks numeric field")
}

func TestNormalize_empty_input_yields_empty_fields(t *testing.T) {
	t.Parallel()

	l := homescout.Normalize(homescout.RawListing{}, "https://www.example.com/")

	assert.Equal(t, &homescout.Listing{}, l)
	assert.False(t, l.HasContent())
}

func TestNormalize_unexpected_value_types_degrade_to_empty(t *testing.T) {
	t.Parallel()

	raw := homescout.RawListing{
		"price":   map[string]any{"weird": true},
		"beds":    []any{"3"},
		"address": true,
	}

	l := homescout.Normalize(raw, "https://www.example.com/")

	assert.Empty(t, l.Price)
	assert.Empty(t, l.Beds)
	assert.Empty(t, l.Address)
}

func TestNormalize_absolute_urls_untouched(t *testing.T) {
	t.Parallel()

	raw := homescout.RawListing{"url": "https://other.example.org/p/9"}
	l := homescout.Normalize(raw, "https://www.example.com/search")

	assert.Equal(t, "https://other.example.org/p/9", l.URL)
}

func TestNormalize_relative_url_without_base_is_dropped(t *testing.T) {
	t.Parallel()

	raw := homescout.RawListing{"permalink": "/p/9", "price": "$1"}
	l := homescout.Normalize(raw, "::bad base::")

	assert.Empty(t, l.URL, "an unresolvable link is dropped, not emitted broken")
	assert.Equal(t, "$1", l.Price)
}
