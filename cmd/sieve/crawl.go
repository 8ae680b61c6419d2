package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/sieve/crawl"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// progressURLWidth bounds the URL column of progress lines.
const progressURLWidth = 80

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              c.MetricsAddr,
			Handler:           promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				deps.Logger.Error("metrics server", "addr", c.MetricsAddr, "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	walker := &crawl.Walker{
		Fetcher:   deps.Fetcher,
		Processor: deps.Processor,
		MaxPages:  c.MaxPages,
	}

	result, err := walker.Walk(deps.Ctx, c.Seeds, func(e crawl.ProgressEvent) {
		url := crawl.TruncateURL(e.URL, progressURLWidth)
		if e.Error != nil {
			fmt.Fprintf(deps.Stderr, "[%d, %d queued] %s  error: %v\n", e.Completed, e.Queued, url, e.Error)
			return
		}
		fmt.Fprintf(deps.Stderr, "[%d, %d queued] %s  %s\n", e.Completed, e.Queued, url, crawl.FormatDecision(e.Decision))
	})
	if result != nil {
		fmt.Fprintf(deps.Stdout, "Fetched %d pages: %d accepted, %d skipped, %d failed\n",
			result.Fetched, result.Accepted, result.Skipped, result.Failed)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
