package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homescout"
	"homescout/sqlite"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestListingService_writes_and_reads_back_in_order(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewListingService(db)
	ctx := context.Background()

	err := s.WriteListings(ctx, []*homescout.Listing{
		{Price: "$450,000", Address: "123 Main St", City: "Albany", State: "NY", ZipCode: "12207", URL: "https://example.com/1"},
		{Price: "$520,000", Address: "456 Oak Ave", City: "Albany", State: "NY", ZipCode: "12208", URL: "https://example.com/2"},
	})
	require.NoError(t, err)
	err = s.WriteListings(ctx, []*homescout.Listing{
		{Price: "$610,000", Address: "789 Elm Rd", City: "Troy", State: "NY", ZipCode: "12180", URL: "https://example.com/3"},
	})
	require.NoError(t, err)

	got, err := s.FindListings(ctx, sqlite.ListingFilter{})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "https://example.com/1", got[0].URL)
	assert.Equal(t, "https://example.com/2", got[1].URL)
	assert.Equal(t, "https://example.com/3", got[2].URL)
	assert.Equal(t, "$450,000", got[0].Price)
	assert.Equal(t, "Albany", got[0].City)
}

func TestListingService_filters(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewListingService(db)
	ctx := context.Background()

	require.NoError(t, s.WriteListings(ctx, []*homescout.Listing{
		{City: "Albany", ZipCode: "12207", URL: "https://example.com/1"},
		{City: "Albany", ZipCode: "12208", URL: "https://example.com/2"},
		{City: "Troy", ZipCode: "12180", URL: "https://example.com/3"},
	}))

	city := "Albany"
	got, err := s.FindListings(ctx, sqlite.ListingFilter{City: &city})
	require.NoError(t, err)
	require.Len(t, got, 2)

	zip := "12180"
	got, err = s.FindListings(ctx, sqlite.ListingFilter{ZipCode: &zip})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Troy", got[0].City)
}

func TestListingService_limit_and_offset(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewListingService(db)
	ctx := context.Background()

	require.NoError(t, s.WriteListings(ctx, []*homescout.Listing{
		{URL: "https://example.com/1"},
		{URL: "https://example.com/2"},
		{URL: "https://example.com/3"},
	}))

	got, err := s.FindListings(ctx, sqlite.ListingFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/2", got[0].URL)
}

func TestListingService_empty_batch_is_noop(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewListingService(db)

	require.NoError(t, s.WriteListings(context.Background(), nil))

	got, err := s.FindListings(context.Background(), sqlite.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
