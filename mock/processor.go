package mock

import (
	"context"

	"github.com/fwojciec/sieve"
)

var _ sieve.PageProcessor = (*PageProcessor)(nil)

// PageProcessor is a mock implementation of sieve.PageProcessor.
type PageProcessor struct {
	EvaluateFn    func(ctx context.Context, url string, res *sieve.FetchResult) (*sieve.Decision, error)
	ProcessPageFn func(ctx context.Context, url string, res *sieve.FetchResult) ([]string, error)
}

func (p *PageProcessor) Evaluate(ctx context.Context, url string, res *sieve.FetchResult) (*sieve.Decision, error) {
	return p.EvaluateFn(ctx, url, res)
}

func (p *PageProcessor) ProcessPage(ctx context.Context, url string, res *sieve.FetchResult) ([]string, error) {
	return p.ProcessPageFn(ctx, url, res)
}
