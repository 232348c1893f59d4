package mock

import "homescout"

var _ homescout.ListingExtractor = (*Extractor)(nil)

// Extractor is a mock implementation of homescout.ListingExtractor.
type Extractor struct {
	ExtractFn func(html string) []homescout.RawListing
}

func (e *Extractor) Extract(html string) []homescout.RawListing {
	return e.ExtractFn(html)
}

var _ homescout.Paginator = (*Paginator)(nil)

// Paginator is a mock implementation of homescout.Paginator.
type Paginator struct {
	NextURLFn func(html string, currentURL string, pageIndex int) (string, bool)
}

func (p *Paginator) NextURL(html string, currentURL string, pageIndex int) (string, bool) {
	return p.NextURLFn(html, currentURL, pageIndex)
}
