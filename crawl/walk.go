package crawl

import (
	"context"

	"github.com/fwojciec/sieve"
)

// Frontier configuration for walking.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 100000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.001
	// frontierLinksPerPage estimates queued links per fetched page when
	// sizing the frontier from MaxPages.
	frontierLinksPerPage = 50
)

// Walker fetches pages one at a time, starting from seed URLs, and queues
// the links the processor selects. Pages are fetched in discovery order.
//
// The frontier deduplicates with a Bloom filter. A false positive drops a
// link that was never queued, and because the processor has already
// recorded it in the seen store, later runs will not rediscover it either.
// The filter is sized from FrontierCapacity to keep that rate near
// frontierFalsePositiveRate; a walk that queues far more URLs than the
// capacity loses links more often.
type Walker struct {
	Fetcher   sieve.Fetcher
	Processor sieve.PageProcessor

	// MaxPages limits the number of fetched pages. Zero means no limit.
	MaxPages int

	// ExpectedURLs sizes the frontier. Zero derives it from MaxPages.
	ExpectedURLs uint
}

// FrontierCapacity returns the number of distinct URLs the frontier filter
// is sized for.
func (w *Walker) FrontierCapacity() uint {
	if w.ExpectedURLs > 0 {
		return w.ExpectedURLs
	}
	return max(frontierExpectedURLs, uint(max(w.MaxPages, 0))*frontierLinksPerPage)
}

// Result holds the outcome of a walk.
type Result struct {
	Fetched  int
	Accepted int
	Skipped  int
	Failed   int
}

// ProgressEvent reports the outcome of one page.
type ProgressEvent struct {
	URL       string
	Completed int
	Queued    int
	Decision  *sieve.Decision
	Error     error
}

// ProgressFunc is a callback for reporting walk progress.
type ProgressFunc func(event ProgressEvent)

// Walk processes pages until the frontier is empty, MaxPages is reached,
// or ctx is canceled. Per-page failures are counted, not returned.
func (w *Walker) Walk(ctx context.Context, seeds []string, progress ProgressFunc) (*Result, error) {
	frontier := NewFrontier(w.FrontierCapacity(), frontierFalsePositiveRate)
	for _, seed := range seeds {
		frontier.Push(seed)
	}

	var result Result
	for {
		if w.MaxPages > 0 && result.Fetched >= w.MaxPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		url, ok := frontier.Pop()
		if !ok {
			break // Frontier empty
		}

		event := ProgressEvent{URL: url}
		d, err := w.process(ctx, url)
		result.Fetched++
		switch {
		case err != nil:
			result.Failed++
			event.Error = err
		case d.Accepted():
			result.Accepted++
			for _, link := range d.Links {
				frontier.Push(link)
			}
		default:
			result.Skipped++
		}

		if progress != nil {
			event.Decision = d
			event.Completed = result.Fetched
			event.Queued = frontier.Len()
			progress(event)
		}
	}

	return &result, nil
}

func (w *Walker) process(ctx context.Context, url string) (*sieve.Decision, error) {
	res, err := w.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return w.Processor.Evaluate(ctx, url, res)
}
