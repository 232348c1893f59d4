package main

import (
	"context"
	"errors"

	"homescout"
)

// Ensure TeeWriter implements homescout.ListingWriter at compile time.
var _ homescout.ListingWriter = (*TeeWriter)(nil)

// TeeWriter fans each batch out to multiple writers. A failure in any
// writer fails the batch.
type TeeWriter struct {
	writers []homescout.ListingWriter
}

// NewTeeWriter creates a TeeWriter over the given writers.
func NewTeeWriter(writers ...homescout.ListingWriter) *TeeWriter {
	return &TeeWriter{writers: writers}
}

// WriteListings delegates the batch to every writer.
func (t *TeeWriter) WriteListings(ctx context.Context, listings []*homescout.Listing) error {
	for _, w := range t.writers {
		if err := w.WriteListings(ctx, listings); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer and returns the combined error.
func (t *TeeWriter) Close() error {
	var errs []error
	for _, w := range t.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
