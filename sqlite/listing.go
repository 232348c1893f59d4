package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"homescout"
)

// Compile-time interface verification.
var _ homescout.ListingWriter = (*ListingService)(nil)

// ListingService stores crawled listings in SQLite, preserving discovery
// order via a monotonic position counter.
type ListingService struct {
	db       *DB
	position int
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db}
}

// WriteListings inserts one page's batch of listings in a single
// transaction. Empty batches are a no-op.
func (s *ListingService) WriteListings(ctx context.Context, listings []*homescout.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range listings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listings (id, price, beds, baths, sqft, lot_size, address, city, state, zip_code, property_type, listing_by, image_url, url, position, crawled_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), l.Price, l.Beds, l.Baths, l.Sqft, l.LotSize, l.Address, l.City, l.State,
			l.ZipCode, l.PropertyType, l.ListingBy, l.ImageURL, l.URL, s.position, now)
		if err != nil {
			return err
		}
		s.position++
	}

	return tx.Commit()
}

// Close is a no-op; the DB connection is owned by the caller.
func (s *ListingService) Close() error {
	return nil
}

// ListingFilter represents a filter for FindListings.
type ListingFilter struct {
	ZipCode *string
	City    *string

	Offset int
	Limit  int
}

// FindListings retrieves stored listings matching the filter, in discovery
// order.
func (s *ListingService) FindListings(ctx context.Context, filter ListingFilter) ([]*homescout.Listing, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT price, beds, baths, sqft, lot_size, address, city, state, zip_code, property_type, listing_by, image_url, url
		FROM listings WHERE 1=1`)

	if filter.ZipCode != nil {
		query.WriteString(" AND zip_code = ?")
		args = append(args, *filter.ZipCode)
	}
	if filter.City != nil {
		query.WriteString(" AND city = ?")
		args = append(args, *filter.City)
	}

	query.WriteString(" ORDER BY position ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*homescout.Listing
	for rows.Next() {
		var l homescout.Listing
		if err := rows.Scan(&l.Price, &l.Beds, &l.Baths, &l.Sqft, &l.LotSize, &l.Address, &l.City,
			&l.State, &l.ZipCode, &l.PropertyType, &l.ListingBy, &l.ImageURL, &l.URL); err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}
	return listings, rows.Err()
}
