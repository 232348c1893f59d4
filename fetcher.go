package homescout

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use plain HTTP or browser automation; retry policy
// and politeness delay live with the caller, not here.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// SessionFetcher is a Fetcher whose identity toward the target site
// (cookies, header fingerprint, browser process) can be discarded and
// rebuilt. The crawler retires the session whenever it detects an
// anti-automation interstitial so the retried request arrives looking like
// a new visitor.
type SessionFetcher interface {
	Fetcher

	// RetireSession discards the current session state. The next Fetch uses
	// a fresh one.
	RetireSession()
}
