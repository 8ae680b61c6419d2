package crawl

import (
	"sync"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/bloom"
)

// Frontier is a first-in first-out queue of pages to fetch. Each URL is
// queued at most once; a Bloom filter remembers what has been queued, so
// rare false positives may drop a URL that was never queued.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu     sync.Mutex
	queued *bloom.Filter
	queue  []string
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{queued: bloom.NewFilter(n, fpRate)}
}

// Push adds a URL to the back of the queue.
// Returns false if the URL has already been queued.
// URLs differing only by fragment are considered the same.
func (f *Frontier) Push(url string) bool {
	url = sieve.Defragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queued.TestAndAdd(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
