package goquery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"homescout"
)

// nextLinkSelectors locate the semantically-marked next-page control, in
// fallback order.
var nextLinkSelectors = []string{
	`a[rel="next"]`,
	`link[rel="next"]`,
	`a[aria-label="Go to next page"]`,
	`a[aria-label="Next page"]`,
	`a[aria-label="Next"]`,
}

// pageSegmentRe matches the page-index path segment the site uses for
// result pages beyond the first.
var pageSegmentRe = regexp.MustCompile(`/pg-[0-9]+`)

// Compile-time interface verification.
var _ homescout.Paginator = (*Paginator)(nil)

// Paginator derives the next result page without being told a page count.
// It prefers the page's explicit next-link; failing that it increments a
// page-index segment in the current URL, which always yields a candidate.
// The crawl terminates on quota, page limit, or a candidate that was
// already visited, not on the paginator running out of ideas.
type Paginator struct{}

// NewPaginator creates a new Paginator.
func NewPaginator() *Paginator {
	return &Paginator{}
}

// NextURL returns the absolute URL of the page following pageIndex
// (1-based). The bool result is false only when link resolution fails on a
// malformed URL; that is logged by the caller and treated as "no further
// pages".
func (p *Paginator) NextURL(html string, currentURL string, pageIndex int) (string, bool) {
	base, err := url.Parse(currentURL)
	if err != nil {
		return "", false
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		for _, sel := range nextLinkSelectors {
			href, ok := doc.Find(sel).First().Attr("href")
			if !ok || href == "" {
				continue
			}
			ref, err := url.Parse(href)
			if err != nil {
				return "", false
			}
			return base.ResolveReference(ref).String(), true
		}
	}

	// Guaranteed fallback: replace or append the page-index segment.
	next := fmt.Sprintf("/pg-%d", pageIndex+1)
	if pageSegmentRe.MatchString(base.Path) {
		base.Path = pageSegmentRe.ReplaceAllString(base.Path, next)
	} else {
		base.Path = strings.TrimSuffix(base.Path, "/") + next
	}
	return base.String(), true
}
