package homescout

// ListingExtractor produces raw listing objects from a result page.
// Implementations try an ordered set of strategies and stop at the first
// one that yields results.
type ListingExtractor interface {
	// Extract returns the raw listings found in the page HTML. Finding
	// nothing is a normal outcome and returns an empty slice; malformed
	// markup or embedded data never fails the page.
	Extract(html string) []RawListing
}

// Paginator computes the page to visit after the current one.
type Paginator interface {
	// NextURL returns the absolute URL of the page following pageIndex
	// (1-based). The bool result is false only when the page's next-link
	// resolves to a malformed URL; the URL-counter fallback otherwise
	// guarantees a candidate.
	NextURL(html string, currentURL string, pageIndex int) (string, bool)
}
