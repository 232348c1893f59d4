package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hsgoquery "homescout/goquery"
)

const cardPageHTML = `<html><body>
	<div data-testid="property-card">
		<a href="/realestateandhomes-detail/123-Main-St_Albany_NY_12207"><img src="/photos/1.jpg"></a>
		<span>$450,000</span>
		<span>3 bds</span>
		<span>2 ba</span>
		<span>1,500 sqft</span>
		<span>4,800 sqft lot</span>
		<div>123 Main St</div>
		<div>Albany, NY 12207</div>
	</div>
	<div data-testid="property-card">
		<span>New</span>
		<span>$520,000</span>
	</div>
	<div data-testid="property-card">
		<span>Sponsored</span>
	</div>
</body></html>`

func TestCardStrategy_extracts_fields_from_cards(t *testing.T) {
	t.Parallel()

	s := hsgoquery.NewCardStrategy()
	raws := s.Extract(parseDoc(t, cardPageHTML))

	require.Len(t, raws, 2, "a card with none of price/address/url is dropped")

	first := raws[0]
	assert.Equal(t, "$450,000", first["price"])
	assert.Equal(t, "3", first["beds"])
	assert.Equal(t, "2", first["baths"])
	assert.Equal(t, "1,500", first["sqft"])
	assert.Equal(t, "4,800 sqft", first["lot_size"])
	assert.Equal(t, "123 Main St", first["address"])
	assert.Equal(t, "/realestateandhomes-detail/123-Main-St_Albany_NY_12207", first["url"])
	assert.Equal(t, "/photos/1.jpg", first["image_url"])

	second := raws[1]
	assert.Equal(t, "$520,000", second["price"])
	assert.Nil(t, second["address"])
}

func TestCardStrategy_selector_fallback_first_match_wins(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<li class="component_property-card"><span>$300,000</span></li>
		<li class="component_property-card"><span>$310,000</span></li>
	</body></html>`

	s := hsgoquery.NewCardStrategy()
	raws := s.Extract(parseDoc(t, html))

	require.Len(t, raws, 2)
	assert.Equal(t, "$300,000", raws[0]["price"])
}

func TestCardStrategy_no_cards(t *testing.T) {
	t.Parallel()

	s := hsgoquery.NewCardStrategy()

	assert.Empty(t, s.Extract(parseDoc(t, `<html><body><p>nothing here</p></body></html>`)))
}

func TestCardStrategy_stat_badges_are_not_addresses(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div data-testid="property-card">
			<span>3 bds 2 ba 1,500 sqft</span>
			<span>$450,000</span>
		</div>
	</body></html>`

	s := hsgoquery.NewCardStrategy()
	raws := s.Extract(parseDoc(t, html))

	require.Len(t, raws, 1)
	assert.Nil(t, raws[0]["address"])
}
