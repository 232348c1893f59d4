package homescout

import (
	"net/url"
	"strconv"
	"strings"
)

// Normalize maps a raw, schema-varying listing object into the canonical
// Listing shape. For each canonical field an ordered fallback chain of
// source locations is tried and the first non-null value wins; the chains
// cover both the embedded-state schema (nested description/location
// objects, numeric prices) and the flat shape produced by the linked-data
// and markup strategies.
//
// pageURL is the URL of the page the raw listing came from; relative
// listing and image paths are resolved against its origin.
func Normalize(raw RawListing, pageURL string) *Listing {
	return &Listing{
		Price:        priceText(priceChain.first(raw)),
		Beds:         fieldText(bedsChain.first(raw)),
		Baths:        fieldText(bathsChain.first(raw)),
		Sqft:         stripGrouping(fieldText(sqftChain.first(raw))),
		LotSize:      lotText(lotChain.first(raw)),
		Address:      fieldText(addressChain.first(raw)),
		City:         fieldText(cityChain.first(raw)),
		State:        fieldText(stateChain.first(raw)),
		ZipCode:      fieldText(zipChain.first(raw)),
		PropertyType: fieldText(typeChain.first(raw)),
		ListingBy:    fieldText(brokerChain.first(raw)),
		ImageURL:     absoluteURL(fieldText(imageChain.first(raw)), pageURL),
		URL:          absoluteURL(fieldText(urlChain.first(raw)), pageURL),
	}
}

// fieldChain is an ordered list of accessors tried in sequence; the first
// one returning a non-nil value wins.
type fieldChain []func(raw RawListing) any

func (c fieldChain) first(raw RawListing) any {
	for _, fn := range c {
		if v := fn(raw); v != nil {
			return v
		}
	}
	return nil
}

// field reads a single top-level key.
func field(name string) func(RawListing) any {
	return func(raw RawListing) any {
		if v, ok := raw[name]; ok && v != nil {
			return v
		}
		return nil
	}
}

// nested walks a key path through nested objects. A list encountered along
// the path is traversed through its first element, which covers
// list-shaped fields such as branding blocks.
func nested(keys ...string) func(RawListing) any {
	return func(raw RawListing) any {
		var cur any = map[string]any(raw)
		for _, k := range keys {
			if list, ok := cur.([]any); ok {
				if len(list) == 0 {
					return nil
				}
				cur = list[0]
			}
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[k]
			if cur == nil {
				return nil
			}
		}
		return cur
	}
}

// Field fallback chains, most specific source representation first. The
// first accessor in each chain is the canonical flat key so that listings
// already in canonical shape pass through untouched.
var (
	priceChain   = fieldChain{field("price"), field("list_price"), field("listPrice")}
	bedsChain    = fieldChain{field("beds"), nested("description", "beds"), field("bedrooms")}
	bathsChain   = fieldChain{field("baths"), nested("description", "baths_consolidated"), nested("description", "baths"), field("bathrooms")}
	sqftChain    = fieldChain{field("sqft"), nested("description", "sqft"), field("square_feet")}
	lotChain     = fieldChain{field("lot_size"), nested("description", "lot_sqft"), field("lotSize")}
	addressChain = fieldChain{field("address"), nested("location", "address", "line"), field("street_address")}
	cityChain    = fieldChain{field("city"), nested("location", "address", "city")}
	stateChain   = fieldChain{field("state"), nested("location", "address", "state_code"), nested("location", "address", "state")}
	zipChain     = fieldChain{field("zip_code"), nested("location", "address", "postal_code"), field("zip")}
	typeChain    = fieldChain{field("property_type"), nested("description", "type"), field("prop_type")}
	brokerChain  = fieldChain{field("listing_by"), nested("branding", "name"), nested("advertisers", "name"), field("broker")}
	imageChain   = fieldChain{field("image_url"), nested("primary_photo", "href"), field("photo")}
	urlChain     = fieldChain{field("url"), field("permalink"), field("href")}
)

// fieldText coerces a raw field value to its canonical text form.
func fieldText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

// priceText keeps pre-formatted price strings as-is and renders numeric
// prices as currency text with digit grouping.
func priceText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return "$" + groupDigits(strconv.FormatInt(int64(t), 10))
	case int:
		return "$" + groupDigits(strconv.Itoa(t))
	case int64:
		return "$" + groupDigits(strconv.FormatInt(t, 10))
	}
	return ""
}

// lotText labels bare numeric lot sizes with their unit; pre-labeled
// strings pass through.
func lotText(v any) string {
	switch v.(type) {
	case string:
		return fieldText(v)
	case float64, int, int64:
		return groupDigits(fieldText(v)) + " sqft"
	}
	return ""
}

// stripGrouping removes thousands separators from numeric text.
func stripGrouping(s string) string {
	return strings.NewReplacer(",", "", " ", "").Replace(s)
}

// groupDigits inserts thousands separators into a digit string.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// absoluteURL resolves a possibly relative href against the origin of
// pageURL. Already-absolute values pass through; unresolvable values are
// dropped rather than emitted as broken links.
func absoluteURL(href, pageURL string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
