// Package rod provides a browser-automation implementation of
// homescout.SessionFetcher for sites that render results with JavaScript
// or fingerprint plain HTTP clients. Session retirement restarts the
// browser process, which discards cookies, cache, and TLS session state in
// one move.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"homescout"
)

// Ensure Fetcher implements homescout.SessionFetcher at compile time.
var _ homescout.SessionFetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a headless Chrome browser.
// It is safe for concurrent use.
type Fetcher struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	retire   bool // restart the browser before the next fetch
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	f := &Fetcher{}
	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// launch starts a fresh browser instance. Callers other than NewFetcher
// must hold mu.
func (f *Fetcher) launch() error {
	l := launcher.New().
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return nil
}

// shutdown closes the current browser and launcher. Must be called with mu
// held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// RetireSession schedules a browser restart before the next fetch. The
// restart is deferred so an in-flight page on another goroutine can finish
// against the old process.
func (f *Fetcher) RetireSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retire = true
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	if f.retire {
		// Keep the old browser if the replacement fails to launch.
		oldBrowser, oldLauncher := f.browser, f.launcher
		f.browser, f.launcher = nil, nil
		if err := f.launch(); err != nil {
			f.browser, f.launcher = oldBrowser, oldLauncher
		} else {
			if oldBrowser != nil {
				_ = oldBrowser.Close()
			}
			if oldLauncher != nil {
				oldLauncher.Kill()
			}
		}
		f.retire = false
	}
	browser := f.browser
	f.mu.Unlock()

	if browser == nil {
		return "", homescout.Errorf(homescout.EUNAVAILABLE, "browser not running")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown()
}
