// Package prometheus records page decisions as Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/sieve"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Processor implements sieve.PageProcessor.
var _ sieve.PageProcessor = (*Processor)(nil)

// Metrics holds the collectors updated by Processor.
type Metrics struct {
	PagesTotal    *prometheus.CounterVec
	ErrorsTotal   prometheus.Counter
	LinksTotal    prometheus.Counter
	ProcessingSec prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sieve_pages_total",
			Help: "The total number of pages evaluated, by verdict",
		}, []string{"verdict"}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sieve_page_errors_total",
			Help: "The total number of pages that could not be evaluated",
		}),
		LinksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sieve_links_yielded_total",
			Help: "The total number of new links yielded by accepted pages",
		}),
		ProcessingSec: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sieve_page_processing_seconds",
			Help:    "Time spent evaluating one page",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Processor wraps a PageProcessor and records every decision.
type Processor struct {
	next    sieve.PageProcessor
	metrics *Metrics
}

// NewProcessor creates a new Processor.
func NewProcessor(next sieve.PageProcessor, metrics *Metrics) *Processor {
	return &Processor{next: next, metrics: metrics}
}

// Evaluate delegates to the wrapped processor and records the outcome.
func (p *Processor) Evaluate(ctx context.Context, url string, res *sieve.FetchResult) (*sieve.Decision, error) {
	begin := time.Now()
	d, err := p.next.Evaluate(ctx, url, res)
	p.metrics.ProcessingSec.Observe(time.Since(begin).Seconds())
	if err != nil {
		p.metrics.ErrorsTotal.Inc()
		return nil, err
	}
	p.metrics.PagesTotal.WithLabelValues(string(d.Verdict)).Inc()
	p.metrics.LinksTotal.Add(float64(len(d.Links)))
	return d, nil
}

// ProcessPage evaluates the page through Evaluate so it is counted once.
func (p *Processor) ProcessPage(ctx context.Context, url string, res *sieve.FetchResult) ([]string, error) {
	d, err := p.Evaluate(ctx, url, res)
	if err != nil {
		return nil, err
	}
	return d.Links, nil
}
