// Package crawl orchestrates listing crawls: it drives fetching,
// extraction, admission, and pagination per result page, against shared
// per-run state.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"homescout"
)

// DefaultConcurrency is the number of pages in flight at once. It is kept
// intentionally low to minimize the anti-automation detection surface.
const DefaultConcurrency = 2

// Crawler coordinates one crawl run. Collaborators are injected as
// interfaces; extraction and normalization are pure, and all shared
// mutation goes through State's single lock.
type Crawler struct {
	Fetcher   homescout.Fetcher
	Extractor homescout.ListingExtractor
	Paginator homescout.Paginator
	Writer    homescout.ListingWriter

	// Limiter, when set, spaces out page requests per host.
	Limiter *HostLimiter

	// Logger, when set, receives per-page progress. Nil disables logging.
	Logger *slog.Logger

	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl run.
type Result struct {
	Saved   int // listings emitted
	Pages   int // pages processed
	Failed  int // pages abandoned after exhausting retries
	Blocked int // abandoned pages whose last failure was an interstitial
}

// pageResult holds the outcome of processing a single result page.
type pageResult struct {
	ref      PageRef
	listings []*homescout.Listing
	nextURL  string
	hasNext  bool
	err      error
}

// Run executes the crawl described by search and blocks until it
// completes. Reaching the quota or page limit stops new enqueues; in-flight
// pages complete and their listings still pass through admission, which
// rejects once the quota is met.
//
// A failing writer is fatal and terminates the run; listings already
// written are retained. The returned Result is valid in either case.
func (c *Crawler) Run(ctx context.Context, search homescout.Search) (*Result, error) {
	search = search.WithDefaults()
	if err := search.Validate(); err != nil {
		return &Result{}, err
	}

	state := NewState(search.ResultsWanted, search.MaxPages)
	frontier := NewFrontier()
	frontier.Push(PageRef{URL: search.URL(), Index: 1})

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	workCh := make(chan PageRef, concurrency)
	resultCh := make(chan pageResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for ref := range workCh {
				res := c.processPage(gctx, ref)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	var fatalErr error
	pending := 0
	var next *PageRef
	if ref, ok := frontier.Pop(); ok {
		next = &ref
	}

loop:
	for {
		if next == nil && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			fatalErr = ctx.Err()
			break
		}

		if next != nil {
			select {
			case <-ctx.Done():
				fatalErr = ctx.Err()
				break loop
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				if err := c.handleResult(ctx, res, state, frontier, result); err != nil {
					fatalErr = err
					break loop
				}
			}
		} else {
			select {
			case <-ctx.Done():
				fatalErr = ctx.Err()
				break loop
			case res, ok := <-resultCh:
				if !ok {
					break loop
				}
				pending--
				if err := c.handleResult(ctx, res, state, frontier, result); err != nil {
					fatalErr = err
					break loop
				}
			}
		}

		if next == nil {
			if ref, ok := frontier.Pop(); ok {
				next = &ref
			}
		}
	}

	close(workCh)
	for range resultCh {
		// Drain in-flight results; quota admission already closed.
	}

	result.Saved = state.Saved()
	result.Pages = state.PagesVisited()

	if c.Logger != nil {
		c.Logger.Info("crawl finished",
			"saved", result.Saved,
			"pages", result.Pages,
			"failed", result.Failed,
			"blocked", result.Blocked,
		)
	}

	return result, fatalErr
}

// handleResult applies one page's outcome to the shared state: admit and
// emit listings, then enqueue the next page if the quota allows. A writer
// error is returned as fatal.
func (c *Crawler) handleResult(ctx context.Context, res pageResult, state *State, frontier *Frontier, result *Result) error {
	state.RecordPage()

	if res.err != nil {
		result.Failed++
		if homescout.ErrorCode(res.err) == homescout.EBLOCKED {
			result.Blocked++
		}
		if c.Logger != nil {
			c.Logger.Warn("page abandoned", "url", res.ref.URL, "err", res.err)
		}
		return nil
	}

	admitted := state.AdmitPage(res.listings)
	if err := c.Writer.WriteListings(ctx, admitted); err != nil {
		return fmt.Errorf("write listings for %s: %w", res.ref.URL, err)
	}

	if c.Logger != nil {
		c.Logger.Info("page processed",
			"url", res.ref.URL,
			"index", res.ref.Index,
			"extracted", len(res.listings),
			"admitted", len(admitted),
		)
	}

	if !state.ShouldContinue(res.ref.Index) {
		return nil
	}
	if !res.hasNext {
		if c.Logger != nil {
			c.Logger.Info("no further pages", "url", res.ref.URL)
		}
		return nil
	}
	frontier.Push(PageRef{URL: res.nextURL, Index: res.ref.Index + 1})
	return nil
}

// processPage fetches one result page and runs extraction, normalization,
// and pagination planning on it. Runs inside a worker; it touches no
// shared state.
func (c *Crawler) processPage(ctx context.Context, ref PageRef) pageResult {
	res := pageResult{ref: ref}

	if c.Limiter != nil {
		if u, err := url.Parse(ref.URL); err == nil {
			if err := c.Limiter.Wait(ctx, u.Host); err != nil {
				res.err = err
				return res
			}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	fetchFn := func(ctx context.Context, pageURL string) (string, error) {
		html, err := c.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			// Status-level blocks get the same treatment as interstitials.
			if homescout.ErrorCode(err) == homescout.EBLOCKED {
				if sf, ok := c.Fetcher.(homescout.SessionFetcher); ok {
					sf.RetireSession()
				}
			}
			return "", err
		}
		if Blocked(html) {
			// Retire the session so the retry arrives as a new visitor.
			if sf, ok := c.Fetcher.(homescout.SessionFetcher); ok {
				sf.RetireSession()
			}
			return "", homescout.Errorf(homescout.EBLOCKED, "anti-automation interstitial at %s", pageURL)
		}
		return html, nil
	}

	html, err := FetchWithRetryDelays(ctx, ref.URL, fetchFn, c.logf, delays)
	if err != nil {
		res.err = err
		return res
	}

	for _, raw := range c.Extractor.Extract(html) {
		l := homescout.Normalize(raw, ref.URL)
		if l.HasContent() {
			res.listings = append(res.listings, l)
		}
	}

	res.nextURL, res.hasNext = c.Paginator.NextURL(html, ref.URL, ref.Index)
	return res
}

func (c *Crawler) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(fmt.Sprintf(format, args...))
	}
}
