package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
)

// Run executes the process command.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	res, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	d, err := deps.Processor.Evaluate(deps.Ctx, c.URL, res)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sieve.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "%s  %s\n", d.URL, crawl.FormatDecision(d))

	links := slices.Clone(d.Links)
	slices.Sort(links)
	for _, link := range links {
		fmt.Fprintln(deps.Stdout, link)
	}
	return nil
}
