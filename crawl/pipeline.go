// Package crawl implements the page decision pipeline: tokenizing,
// low-value and near-duplicate rejection, and outbound link selection.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/sieve"
)

// Compile-time interface verification.
var _ sieve.PageProcessor = (*Pipeline)(nil)

// Pipeline decides, page by page, what to keep and where to go next.
type Pipeline struct {
	Extractor sieve.TextExtractor
	Tokenizer *Tokenizer
	LowValue  *LowValueFilter
	Detector  *Detector
	Policy    *Policy
	Seen      sieve.SeenStore
	Logger    *slog.Logger
}

// NewPipeline wires a Pipeline from configuration and collaborators.
// A nil logger discards diagnostics. Options are passed to the Detector.
func NewPipeline(cfg sieve.Config, extractor sieve.TextExtractor, corpus sieve.CorpusStore, seen sieve.SeenStore, logger *slog.Logger, opts ...DetectorOption) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		Extractor: extractor,
		Tokenizer: NewTokenizer(cfg.StopWords, cfg.BlockLimit),
		LowValue:  NewLowValueFilter(cfg.MinTokens, cfg.MaxTokens, logger),
		Detector:  NewDetector(corpus, cfg.SimilarityThreshold, logger, opts...),
		Policy:    NewPolicy(cfg.AllowedFragments, cfg.BlockedExtensions),
		Seen:      seen,
		Logger:    logger,
	}, nil
}

// ProcessPage returns the outbound links of the page worth visiting next.
// Skipped pages yield no links.
func (p *Pipeline) ProcessPage(ctx context.Context, rawURL string, res *sieve.FetchResult) ([]string, error) {
	d, err := p.Evaluate(ctx, rawURL, res)
	if err != nil {
		return nil, err
	}
	return d.Links, nil
}

// Evaluate runs the page through the pipeline. Steps run in a fixed order
// and the first rejecting step ends evaluation; the corpus and the seen
// set are only written for accepted pages.
func (p *Pipeline) Evaluate(ctx context.Context, rawURL string, res *sieve.FetchResult) (*sieve.Decision, error) {
	docURL := sieve.Defragment(rawURL)
	if _, err := url.Parse(docURL); err != nil {
		return nil, sieve.Errorf(sieve.EINVALID, "malformed page URL %q: %v", rawURL, err)
	}
	d := &sieve.Decision{URL: docURL}

	if res == nil || len(res.Body) == 0 {
		p.Logger.Info("empty response", "url", docURL)
		d.Verdict = sieve.VerdictEmpty
		return d, nil
	}
	if res.Truncated {
		p.Logger.Info("response exceeds size limit", "url", docURL, "bytes", len(res.Body))
		d.Verdict = sieve.VerdictTooLarge
		return d, nil
	}
	if !utf8.Valid(res.Body) {
		p.Logger.Info("undecodable response", "url", docURL)
		d.Verdict = sieve.VerdictUndecodable
		return d, nil
	}

	extracted, err := p.Extractor.Extract(res.Body)
	if err != nil {
		p.Logger.Info("undecodable response", "url", docURL, "err", err)
		d.Verdict = sieve.VerdictUndecodable
		return d, nil
	}
	if res.Status != http.StatusOK {
		d.Verdict = sieve.VerdictBadStatus
		return d, nil
	}
	if extracted.Text == "" {
		d.Verdict = sieve.VerdictEmpty
		return d, nil
	}

	freq, err := p.Tokenizer.Tokenize(strings.NewReader(extracted.Text))
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", docURL, err)
	}
	d.Tokens = freq.Distinct()

	if p.LowValue.IsLowValue(docURL, freq) {
		d.Verdict = sieve.VerdictLowValue
		return d, nil
	}

	match, err := p.Detector.Admit(ctx, docURL, freq)
	if err != nil {
		return nil, err
	}
	if match != nil {
		d.Verdict = sieve.VerdictDuplicate
		d.Match = match
		return d, nil
	}
	d.Verdict = sieve.VerdictAccepted

	links, err := ExtractLinks(docURL, extracted.Hrefs)
	if err != nil {
		return nil, err
	}
	valid := make([]string, 0, len(links))
	for _, link := range links {
		ok, err := p.Policy.IsValid(link)
		if err != nil {
			p.Logger.Info("malformed link", "url", docURL, "link", link, "err", err)
			continue
		}
		if ok {
			valid = append(valid, link)
		}
	}

	d.Links, err = FilterUnseen(ctx, valid, p.Seen)
	if err != nil {
		return nil, fmt.Errorf("frontier dedup: %w", err)
	}
	return d, nil
}
