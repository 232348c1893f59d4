package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homescout"
	"homescout/mock"
)

func TestTeeWriter_fans_out_batches(t *testing.T) {
	t.Parallel()

	var a, b [][]*homescout.Listing
	tee := NewTeeWriter(
		&mock.Writer{WriteListingsFn: func(ctx context.Context, listings []*homescout.Listing) error {
			a = append(a, listings)
			return nil
		}},
		&mock.Writer{WriteListingsFn: func(ctx context.Context, listings []*homescout.Listing) error {
			b = append(b, listings)
			return nil
		}},
	)

	batch := []*homescout.Listing{{URL: "https://example.com/1"}}
	require.NoError(t, tee.WriteListings(context.Background(), batch))

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, batch, a[0])
	assert.Equal(t, batch, b[0])
}

func TestTeeWriter_first_failure_fails_batch(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	called := false
	tee := NewTeeWriter(
		&mock.Writer{WriteListingsFn: func(ctx context.Context, listings []*homescout.Listing) error {
			return boom
		}},
		&mock.Writer{WriteListingsFn: func(ctx context.Context, listings []*homescout.Listing) error {
			called = true
			return nil
		}},
	)

	err := tee.WriteListings(context.Background(), []*homescout.Listing{{URL: "https://example.com/1"}})

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestTeeWriter_close_combines_errors(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	second := errors.New("second")
	tee := NewTeeWriter(
		&mock.Writer{
			WriteListingsFn: func(ctx context.Context, listings []*homescout.Listing) error { return nil },
			CloseFn:         func() error { return first },
		},
		&mock.Writer{
			WriteListingsFn: func(ctx context.Context, listings []*homescout.Listing) error { return nil },
			CloseFn:         func() error { return second },
		},
	)

	err := tee.Close()

	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}
