package homescout

import (
	"fmt"
	"net/url"
	"strings"
)

// ListingType selects the kind of search a crawl targets.
type ListingType string

// Supported listing types.
const (
	ListingTypeBuy  ListingType = "buy"
	ListingTypeRent ListingType = "rent"
)

// Defaults for Search fields left at their zero value.
const (
	DefaultLocation      = "NY"
	DefaultResultsWanted = 20
	DefaultMaxPages      = 5
)

// Search URL templates per listing type. The location slug is interpolated
// into the path.
const (
	buySearchTemplate  = "https://www.realtor.com/realestateandhomes-search/%s"
	rentSearchTemplate = "https://www.realtor.com/apartments/%s"
)

// Search describes one crawl run: where to start and when to stop.
type Search struct {
	// StartURL is the absolute URL of the first result page. When empty it
	// is derived from Location and Type.
	StartURL string

	// Location is a free-text region identifier, e.g. "NY" or
	// "Austin, TX".
	Location string

	Type ListingType

	// ResultsWanted bounds how many listings the run may emit.
	ResultsWanted int

	// MaxPages bounds how many result pages the run may fetch.
	MaxPages int
}

// WithDefaults returns a copy of the search with zero-valued fields filled
// from the package defaults.
func (s Search) WithDefaults() Search {
	if s.Location == "" {
		s.Location = DefaultLocation
	}
	if s.Type == "" {
		s.Type = ListingTypeBuy
	}
	if s.ResultsWanted == 0 {
		s.ResultsWanted = DefaultResultsWanted
	}
	if s.MaxPages == 0 {
		s.MaxPages = DefaultMaxPages
	}
	return s
}

// Validate returns an error if the search contains invalid fields.
func (s Search) Validate() error {
	if s.Type != ListingTypeBuy && s.Type != ListingTypeRent {
		return Errorf(EINVALID, "unknown listing type %q", s.Type)
	}
	if s.ResultsWanted <= 0 {
		return Errorf(EINVALID, "results wanted must be positive")
	}
	if s.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if s.StartURL == "" && s.Location == "" {
		return Errorf(EINVALID, "either start URL or location required")
	}
	if s.StartURL != "" {
		u, err := url.Parse(s.StartURL)
		if err != nil || !u.IsAbs() {
			return Errorf(EINVALID, "start URL must be absolute")
		}
	}
	return nil
}

// URL returns the first page to fetch: StartURL when set, otherwise a URL
// derived deterministically from Location and Type.
func (s Search) URL() string {
	if s.StartURL != "" {
		return s.StartURL
	}
	tmpl := buySearchTemplate
	if s.Type == ListingTypeRent {
		tmpl = rentSearchTemplate
	}
	return fmt.Sprintf(tmpl, locationSlug(s.Location))
}

// locationSlug converts a free-text location into a URL path segment:
// "New York, NY" becomes "New-York_NY".
func locationSlug(location string) string {
	location = strings.TrimSpace(location)
	if city, state, ok := strings.Cut(location, ","); ok {
		location = strings.TrimSpace(city) + "_" + strings.TrimSpace(state)
	}
	slug := strings.Join(strings.Fields(location), "-")
	return url.PathEscape(slug)
}
