package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"homescout"
)

// State tracks dedup and quota for one crawl run. It lives for exactly one
// run and is discarded at completion; nothing in it persists across runs.
//
// State is the only resource shared across concurrent page handlers.
// Check-and-increment on the saved count and insert-if-absent on the seen
// set happen under a single mutex so that admission is serialized.
type State struct {
	mu            sync.Mutex
	resultsWanted int
	maxPages      int
	saved         int
	pages         int
	seen          map[uint64]struct{} // xxhash64 of listing identity keys
}

// NewState creates crawl state for the given quota.
func NewState(resultsWanted, maxPages int) *State {
	return &State{
		resultsWanted: resultsWanted,
		maxPages:      maxPages,
		seen:          make(map[uint64]struct{}),
	}
}

// Admit decides whether a listing is emitted. A listing is rejected when
// its identity key is empty, when the key was already seen this run, or
// when the quota is already met. Accepted listings are recorded and count
// against the quota.
func (s *State) Admit(l *homescout.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admitLocked(l)
}

// AdmitPage filters one page's listings in order, so that within a page
// earlier listings win identity-key ties. Admission stops as soon as the
// quota is met, bounding emission exactly at resultsWanted even when a
// page holds more admissible listings.
func (s *State) AdmitPage(listings []*homescout.Listing) []*homescout.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	var admitted []*homescout.Listing
	for _, l := range listings {
		if s.saved >= s.resultsWanted {
			break
		}
		if s.admitLocked(l) {
			admitted = append(admitted, l)
		}
	}
	return admitted
}

func (s *State) admitLocked(l *homescout.Listing) bool {
	if s.saved >= s.resultsWanted {
		return false
	}
	key := l.IdentityKey()
	if key == "" {
		return false
	}
	h := xxhash.Sum64String(key)
	if _, ok := s.seen[h]; ok {
		return false
	}
	s.seen[h] = struct{}{}
	s.saved++
	return true
}

// ShouldContinue reports whether the crawl may enqueue the page after
// pageIndex (1-based): the quota is not met and the page limit not
// reached.
func (s *State) ShouldContinue(pageIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved < s.resultsWanted && pageIndex < s.maxPages
}

// RecordPage counts a visited page and returns the new total.
func (s *State) RecordPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages++
	return s.pages
}

// Saved returns the number of listings admitted so far.
func (s *State) Saved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// PagesVisited returns the number of pages processed so far.
func (s *State) PagesVisited() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}
