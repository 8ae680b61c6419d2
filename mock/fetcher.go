package mock

import (
	"context"

	"github.com/fwojciec/sieve"
)

var _ sieve.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sieve.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sieve.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sieve.FetchResult, error) {
	return f.FetchFn(ctx, url)
}
