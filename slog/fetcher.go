// Package slog provides log/slog-based logging decorators for homescout
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"homescout"
)

// Ensure LoggingFetcher implements homescout.Fetcher.
var _ homescout.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   homescout.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next homescout.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// RetireSession logs the retirement and delegates when the wrapped fetcher
// supports sessions; otherwise it is a no-op.
func (f *LoggingFetcher) RetireSession() {
	if sf, ok := f.next.(homescout.SessionFetcher); ok {
		f.logger.Info("session retired")
		sf.RetireSession()
	}
}
