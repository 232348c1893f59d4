package mock

import (
	"context"

	"homescout"
)

var _ homescout.SessionFetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of homescout.SessionFetcher.
type Fetcher struct {
	FetchFn         func(ctx context.Context, url string) (string, error)
	CloseFn         func() error
	RetireSessionFn func()
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

func (f *Fetcher) RetireSession() {
	if f.RetireSessionFn != nil {
		f.RetireSessionFn()
	}
}
