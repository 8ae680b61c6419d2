package sieve

import (
	"context"
	"strings"
)

// Verdict is the outcome of evaluating one page.
type Verdict string

// Page verdicts. Every verdict other than VerdictAccepted is a skip
// condition: the page yields no links and no state is changed.
const (
	VerdictAccepted    Verdict = "accepted"
	VerdictUndecodable Verdict = "undecodable"
	VerdictBadStatus   Verdict = "bad_status"
	VerdictEmpty       Verdict = "empty"
	VerdictLowValue    Verdict = "low_value"
	VerdictDuplicate   Verdict = "duplicate"
	VerdictTooLarge    Verdict = "too_large"
)

// Match describes the corpus entry a page was found to nearly duplicate.
type Match struct {
	URL   string
	Score float64
}

// Decision is the full outcome of evaluating a page.
type Decision struct {
	URL     string
	Verdict Verdict

	// Tokens is the number of distinct tokens. Zero if the page was
	// skipped before tokenizing.
	Tokens int

	// Match is set when Verdict is VerdictDuplicate.
	Match *Match

	// Links holds the outbound URLs worth visiting next.
	// Only accepted pages yield links.
	Links []string
}

// Accepted reports whether the page was kept.
func (d *Decision) Accepted() bool {
	return d.Verdict == VerdictAccepted
}

// PageProcessor decides whether a fetched page is kept and which of its
// links are visited next.
type PageProcessor interface {
	// Evaluate runs the pipeline and returns the full decision.
	// An error means the page could not be processed at all; skip
	// conditions are reported through the decision's verdict.
	Evaluate(ctx context.Context, url string, res *FetchResult) (*Decision, error)

	// ProcessPage runs the pipeline and returns only the links to visit.
	ProcessPage(ctx context.Context, url string, res *FetchResult) ([]string, error)
}

// Defragment strips everything from the first '#' onward.
func Defragment(rawURL string) string {
	u, _, _ := strings.Cut(rawURL, "#")
	return u
}
