// Package http provides the default HTTP-based implementation of
// homescout.SessionFetcher. Each session carries a stable cookie jar and
// header fingerprint; retiring the session discards both so the next
// request arrives looking like a new visitor.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/google/uuid"

	"homescout"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 30 * time.Second

// profile is one outbound header fingerprint. A session keeps the same
// profile for its whole lifetime; mixing fingerprints within a session is
// itself a detection signal.
type profile struct {
	userAgent      string
	acceptLanguage string
}

var profiles = []profile{
	{
		userAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		acceptLanguage: "en-US,en;q=0.9",
	},
	{
		userAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		acceptLanguage: "en-US,en;q=0.8",
	},
	{
		userAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		acceptLanguage: "en-US,en;q=0.9,es;q=0.5",
	},
	{
		userAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/17.4 Safari/605.1.15 AppleWebKit/605.1.15 (KHTML, like Gecko)",
		acceptLanguage: "en-US,en;q=0.9",
	},
}

// Ensure Fetcher implements homescout.SessionFetcher at compile time.
var _ homescout.SessionFetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over plain HTTP with a rotating session
// identity. It is safe for concurrent use.
type Fetcher struct {
	timeout time.Duration

	mu         sync.Mutex
	client     *http.Client
	profile    profile
	profileIdx int
	sessionID  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher with a fresh session.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	f.resetSession()
	return f
}

// resetSession installs a new cookie jar, rotates the header profile, and
// assigns a new session ID. Callers other than NewFetcher must hold mu.
func (f *Fetcher) resetSession() {
	jar, _ := cookiejar.New(nil)
	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}
	f.profile = profiles[f.profileIdx%len(profiles)]
	f.profileIdx++
	f.sessionID = uuid.New().String()
}

// SessionID returns the identifier of the current session, for logging.
func (f *Fetcher) SessionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionID
}

// RetireSession discards cookies and fingerprint. The next Fetch uses a
// fresh session.
func (f *Fetcher) RetireSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetSession()
}

// Fetch retrieves the HTML at url using the current session identity.
// Statuses the site uses for rate limiting and bot walls are surfaced as
// EBLOCKED so the caller can retire the session before retrying.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	client := f.client
	prof := f.profile
	f.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", prof.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", prof.acceptLanguage)
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		return "", homescout.Errorf(homescout.EBLOCKED, "HTTP %d for %s", resp.StatusCode, url)
	case http.StatusServiceUnavailable:
		return "", homescout.Errorf(homescout.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", homescout.Errorf(homescout.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.client.CloseIdleConnections()
	return nil
}
