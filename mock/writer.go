package mock

import (
	"context"

	"homescout"
)

var _ homescout.ListingWriter = (*Writer)(nil)

// Writer is a mock implementation of homescout.ListingWriter.
type Writer struct {
	WriteListingsFn func(ctx context.Context, listings []*homescout.Listing) error
	CloseFn         func() error
}

func (w *Writer) WriteListings(ctx context.Context, listings []*homescout.Listing) error {
	return w.WriteListingsFn(ctx, listings)
}

func (w *Writer) Close() error {
	if w.CloseFn == nil {
		return nil
	}
	return w.CloseFn()
}
