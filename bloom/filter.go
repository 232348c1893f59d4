// Package bloom provides probabilistic set membership for crawl
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for deduplicating page URLs across a crawl.
// False positives are possible (a never-seen URL may be reported seen and
// skipped); false negatives are not, so a URL is never crawled twice.
type Filter struct {
	f *bloom.BloomFilter
}

// New creates a filter sized for n expected items with the given false
// positive rate.
func New(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a key as seen.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether a key might have been seen.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// ApproxItems returns the approximate number of keys added.
func (f *Filter) ApproxItems() uint {
	return uint(f.f.ApproximatedSize())
}
