// Package fs provides a file-based dataset writer for crawled listings.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"homescout"
)

// Ensure Writer implements homescout.ListingWriter at compile time.
var _ homescout.ListingWriter = (*Writer)(nil)

// Writer appends listings to an NDJSON file, one record per line, in
// discovery order. Records are written to a temporary file and moved into
// place on Close, so a crashed run never leaves a half-written dataset at
// the target path. Abort discards the pending file.
type Writer struct {
	path    string
	tmpPath string
	f       *os.File
	enc     *json.Encoder
}

// NewWriter creates a Writer targeting path. The parent directory is
// created if needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, err
	}
	return &Writer{
		path:    path,
		tmpPath: tmpPath,
		f:       f,
		enc:     json.NewEncoder(f),
	}, nil
}

// WriteListings appends one page's batch of listings. Empty batches are
// tolerated and write nothing.
func (w *Writer) WriteListings(ctx context.Context, listings []*homescout.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, l := range listings {
		if err := w.enc.Encode(l); err != nil {
			return fmt.Errorf("encode listing: %w", err)
		}
	}
	return nil
}

// Close flushes the pending file and moves it to the target path.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	if err := w.f.Close(); err != nil {
		w.f = nil
		return err
	}
	w.f = nil
	return os.Rename(w.tmpPath, w.path)
}

// Abort discards the pending file without touching the target path.
func (w *Writer) Abort() error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	return os.Remove(w.tmpPath)
}
