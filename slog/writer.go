package slog

import (
	"context"
	"log/slog"
	"time"

	"homescout"
)

// Ensure LoggingWriter implements homescout.ListingWriter.
var _ homescout.ListingWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a ListingWriter with per-batch logging.
type LoggingWriter struct {
	next   homescout.ListingWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next homescout.ListingWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteListings logs the batch size and delegates to the wrapped writer.
func (w *LoggingWriter) WriteListings(ctx context.Context, listings []*homescout.Listing) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write listings",
			"count", len(listings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteListings(ctx, listings)
}

// Close delegates to the wrapped writer.
func (w *LoggingWriter) Close() error {
	return w.next.Close()
}
