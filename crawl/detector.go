package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fwojciec/sieve"
)

// Detector rejects documents that nearly duplicate a document already in
// the corpus. The corpus is read from the store once and kept in memory;
// every accepted document is written through to the store.
// It is safe for concurrent use by multiple goroutines.
//
// The in-memory copy only sees this detector's own writes. When several
// processes share one store, give each detector the same sieve.Locker with
// WithLocker: Admit then holds the lock and reloads the corpus around every
// check and insert.
type Detector struct {
	store     sieve.CorpusStore
	threshold float64
	logger    *slog.Logger
	locker    sieve.Locker

	mu     sync.Mutex
	corpus map[string]sieve.TokenFrequency // nil until loaded
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithLocker shares the check-and-insert critical section with every other
// detector holding the same lock, in this process or another one.
func WithLocker(l sieve.Locker) DetectorOption {
	return func(d *Detector) {
		d.locker = l
	}
}

// NewDetector creates a Detector over the given store. Documents scoring
// above threshold against any other corpus entry are near-duplicates.
func NewDetector(store sieve.CorpusStore, threshold float64, logger *slog.Logger, opts ...DetectorOption) *Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Detector{
		store:     store,
		threshold: threshold,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Check returns the corpus entry the document nearly duplicates, or nil.
// Entries stored under the document's own URL are not compared.
func (d *Detector) Check(ctx context.Context, url string, freq sieve.TokenFrequency) *sieve.Match {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refresh(ctx)
	return d.match(url, freq)
}

// Admit checks the document and, if it is not a near-duplicate, adds it to
// the corpus. The check and the insert are one critical section, so two
// near-identical documents admitted concurrently cannot both pass.
// Returns the match when the document was rejected.
func (d *Detector) Admit(ctx context.Context, url string, freq sieve.TokenFrequency) (*sieve.Match, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.locker != nil {
		unlock, err := d.locker.Lock(ctx)
		if err != nil {
			return nil, fmt.Errorf("corpus lock: %w", err)
		}
		defer unlock()
	}

	d.refresh(ctx)
	if m := d.match(url, freq); m != nil {
		d.logger.Info("near duplicate",
			"url", url,
			"match", m.URL,
			"score", m.Score,
		)
		return m, nil
	}

	if _, ok := d.corpus[url]; ok {
		return nil, nil
	}
	if err := d.store.Put(ctx, url, freq); err != nil {
		return nil, fmt.Errorf("corpus put: %w", err)
	}
	d.corpus[url] = freq
	return nil, nil
}

// Len returns the number of documents in the corpus.
func (d *Detector) Len(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.refresh(ctx)
	return len(d.corpus)
}

// refresh makes the in-memory corpus current. Without a locker nobody else
// writes the store, so the first load stays valid. Must be called with mu held.
func (d *Detector) refresh(ctx context.Context) {
	if d.locker != nil {
		d.corpus = nil
	}
	d.load(ctx)
}

// load reads the corpus on first use. An unreadable corpus starts empty.
func (d *Detector) load(ctx context.Context) {
	if d.corpus != nil {
		return
	}
	corpus, err := d.store.LoadAll(ctx)
	if err != nil {
		d.logger.Warn("corpus unreadable, starting empty", "err", err)
		corpus = nil
	}
	if corpus == nil {
		corpus = make(map[string]sieve.TokenFrequency)
	}
	d.corpus = corpus
}

// match returns the highest scoring entry above the threshold.
// Ties go to the lexically smaller URL.
func (d *Detector) match(url string, freq sieve.TokenFrequency) *sieve.Match {
	var best *sieve.Match
	for u, other := range d.corpus {
		if u == url {
			continue
		}
		score := sieve.Similarity(freq, other)
		if score <= d.threshold {
			continue
		}
		if best == nil || score > best.Score || (score == best.Score && u < best.URL) {
			best = &sieve.Match{URL: u, Score: score}
		}
	}
	return best
}
