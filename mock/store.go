package mock

import (
	"context"

	"github.com/fwojciec/sieve"
)

var _ sieve.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of sieve.CorpusStore.
type CorpusStore struct {
	GetFn     func(ctx context.Context, url string) (sieve.TokenFrequency, error)
	PutFn     func(ctx context.Context, url string, freq sieve.TokenFrequency) error
	LoadAllFn func(ctx context.Context) (map[string]sieve.TokenFrequency, error)
	SaveAllFn func(ctx context.Context, corpus map[string]sieve.TokenFrequency) error
}

func (s *CorpusStore) Get(ctx context.Context, url string) (sieve.TokenFrequency, error) {
	return s.GetFn(ctx, url)
}

func (s *CorpusStore) Put(ctx context.Context, url string, freq sieve.TokenFrequency) error {
	return s.PutFn(ctx, url, freq)
}

func (s *CorpusStore) LoadAll(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
	return s.LoadAllFn(ctx)
}

func (s *CorpusStore) SaveAll(ctx context.Context, corpus map[string]sieve.TokenFrequency) error {
	return s.SaveAllFn(ctx, corpus)
}

var _ sieve.SeenStore = (*SeenStore)(nil)

// SeenStore is a mock implementation of sieve.SeenStore.
type SeenStore struct {
	ContainsFn func(ctx context.Context, url string) (bool, error)
	AddFn      func(ctx context.Context, url string) (bool, error)
}

func (s *SeenStore) Contains(ctx context.Context, url string) (bool, error) {
	return s.ContainsFn(ctx, url)
}

func (s *SeenStore) Add(ctx context.Context, url string) (bool, error) {
	return s.AddFn(ctx, url)
}
