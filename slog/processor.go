package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sieve"
)

// Ensure LoggingProcessor implements sieve.PageProcessor.
var _ sieve.PageProcessor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a PageProcessor and logs every decision.
type LoggingProcessor struct {
	next   sieve.PageProcessor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next sieve.PageProcessor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Evaluate delegates to the wrapped processor and logs the decision.
func (p *LoggingProcessor) Evaluate(ctx context.Context, url string, res *sieve.FetchResult) (d *sieve.Decision, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Error("page", "url", url, "duration", time.Since(begin), "err", err)
			return
		}
		attrs := []any{
			"url", url,
			"verdict", d.Verdict,
			"tokens", d.Tokens,
			"links", len(d.Links),
			"duration", time.Since(begin),
		}
		if d.Match != nil {
			attrs = append(attrs, "match", d.Match.URL, "score", d.Match.Score)
		}
		p.logger.Info("page", attrs...)
	}(time.Now())
	return p.next.Evaluate(ctx, url, res)
}

// ProcessPage evaluates the page through Evaluate so it is logged once.
func (p *LoggingProcessor) ProcessPage(ctx context.Context, url string, res *sieve.FetchResult) ([]string, error) {
	d, err := p.Evaluate(ctx, url, res)
	if err != nil {
		return nil, err
	}
	return d.Links, nil
}
