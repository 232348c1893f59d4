package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"homescout/bloom"
)

// Frontier sizing. A crawl visits at most maxPages result pages, but the
// dedup filter also absorbs every candidate next-URL a planner proposes.
const (
	frontierExpectedURLs      = 4096
	frontierFalsePositiveRate = 0.001
)

// PageRef identifies one result page queued for processing.
type PageRef struct {
	URL   string
	Index int // 1-based position in the crawl sequence
}

// Frontier is the in-memory page queue with Bloom-filter deduplication.
// Pages come out in sequence order, and a URL pushed twice is accepted only
// once, which guards against pagination planners that fail to advance.
// It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *pageHeap
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	h := &pageHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.New(frontierExpectedURLs, frontierFalsePositiveRate),
		queue: h,
	}
}

// Push queues a page. Returns false if the URL has already been queued or
// visited. URL fragments are ignored for deduplication.
func (f *Frontier) Push(ref PageRef) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(ref.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	ref.URL = url
	heap.Push(f.queue, ref)
	return true
}

// Pop returns the queued page with the lowest sequence index.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (PageRef, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return PageRef{}, false
	}
	ref, _ := heap.Pop(f.queue).(PageRef)
	return ref, true
}

// Len returns the number of queued pages.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen reports whether the URL has been queued or visited.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// pageHeap implements heap.Interface; lower sequence indexes pop first.
type pageHeap []PageRef

func (h pageHeap) Len() int           { return len(h) }
func (h pageHeap) Less(i, j int) bool { return h[i].Index < h[j].Index }
func (h pageHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *pageHeap) Push(x any) {
	ref, _ := x.(PageRef)
	*h = append(*h, ref)
}

func (h *pageHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
