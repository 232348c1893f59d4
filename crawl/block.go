package crawl

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockMarkers are title and body phrases that identify anti-automation
// interstitials. Matching is case-insensitive.
var blockMarkers = []string{
	"access denied",
	"access to this page has been denied",
	"captcha",
	"pardon our interruption",
	"press & hold",
	"are you a human",
	"robot or human",
	"request blocked",
}

// bodyProbeLimit bounds how much page text the body scan considers.
// Interstitials are small; real result pages can embed megabytes of state.
const bodyProbeLimit = 4096

// Blocked reports whether the fetched page is an anti-automation
// interstitial rather than a result page. The check runs before any
// extraction is attempted.
func Blocked(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	title := strings.ToLower(doc.Find("title").First().Text())
	for _, marker := range blockMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}

	body := strings.ToLower(doc.Find("body").Text())
	if len(body) > bodyProbeLimit {
		return false
	}
	for _, marker := range blockMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
