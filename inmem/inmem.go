// Package inmem provides in-memory implementations of the sieve stores.
// State lives only as long as the process.
package inmem

import (
	"context"
	"maps"
	"sync"

	"github.com/fwojciec/sieve"
)

// Compile-time interface verification.
var (
	_ sieve.CorpusStore = (*CorpusStore)(nil)
	_ sieve.SeenStore   = (*SeenStore)(nil)
	_ sieve.Locker      = (*Locker)(nil)
)

// Locker is a sieve.Locker shared by detectors within one process.
type Locker struct {
	ch chan struct{}
}

// NewLocker creates an unlocked Locker.
func NewLocker() *Locker {
	return &Locker{ch: make(chan struct{}, 1)}
}

// Lock blocks until the lock is held or ctx is done.
func (l *Locker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.ch <- struct{}{}:
		return func() { <-l.ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CorpusStore is an in-memory sieve.CorpusStore.
// It is safe for concurrent use by multiple goroutines.
type CorpusStore struct {
	mu      sync.RWMutex
	entries map[string]sieve.TokenFrequency
}

// NewCorpusStore creates an empty CorpusStore.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{entries: make(map[string]sieve.TokenFrequency)}
}

// Get returns the token frequencies stored for the URL.
func (s *CorpusStore) Get(ctx context.Context, url string) (sieve.TokenFrequency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	freq, ok := s.entries[url]
	if !ok {
		return nil, sieve.Errorf(sieve.ENOTFOUND, "corpus entry %q not found", url)
	}
	return maps.Clone(freq), nil
}

// Put adds the URL to the corpus unless it is already present.
func (s *CorpusStore) Put(ctx context.Context, url string, freq sieve.TokenFrequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[url]; !ok {
		s.entries[url] = maps.Clone(freq)
	}
	return nil
}

// LoadAll returns a copy of the corpus.
func (s *CorpusStore) LoadAll(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]sieve.TokenFrequency, len(s.entries))
	for url, freq := range s.entries {
		out[url] = maps.Clone(freq)
	}
	return out, nil
}

// SaveAll adds every entry not already present.
func (s *CorpusStore) SaveAll(ctx context.Context, corpus map[string]sieve.TokenFrequency) error {
	for url, freq := range corpus {
		if err := s.Put(ctx, url, freq); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of corpus entries.
func (s *CorpusStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// SeenStore is an in-memory sieve.SeenStore.
// It is safe for concurrent use by multiple goroutines.
type SeenStore struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewSeenStore creates an empty SeenStore.
func NewSeenStore() *SeenStore {
	return &SeenStore{urls: make(map[string]struct{})}
}

// Contains reports whether the URL has been added.
func (s *SeenStore) Contains(ctx context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.urls[url]
	return ok, nil
}

// Add marks the URL as seen and reports whether it was new.
func (s *SeenStore) Add(ctx context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[url]; ok {
		return false, nil
	}
	s.urls[url] = struct{}{}
	return true, nil
}

// Len returns the number of seen URLs.
func (s *SeenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}
