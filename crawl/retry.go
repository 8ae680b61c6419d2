package crawl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/sieve"
)

// Compile-time interface verification.
var _ sieve.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries a fetch that fails or answers with a server error,
// waiting between attempts according to Delays.
type RetryFetcher struct {
	Next   sieve.Fetcher
	Delays []time.Duration
	Logger *slog.Logger
}

// NewRetryFetcher wraps next with the default retry delays.
func NewRetryFetcher(next sieve.Fetcher, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{Next: next, Delays: DefaultRetryDelays(), Logger: logger}
}

// Fetch attempts the request up to len(Delays)+1 times. The last response
// or error is returned once attempts run out.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*sieve.FetchResult, error) {
	maxAttempts := len(f.Delays) + 1 // 1 initial + N retries

	var res *sieve.FetchResult
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err = f.Next.Fetch(ctx, url)
		if err == nil && res.Status < http.StatusInternalServerError {
			return res, nil
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if f.Logger != nil {
			f.Logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.Delays[attempt]):
		}
	}

	return res, err
}
