package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
	"github.com/fwojciec/sieve/inmem"
	"github.com/fwojciec/sieve/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestDetector_Admit(t *testing.T) {
	t.Parallel()

	t.Run("first document is accepted into an empty corpus", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		d := crawl.NewDetector(store, 0.9, nil)

		match, err := d.Admit(ctx, "https://www.ics.uci.edu/a", sieve.TokenFrequency{"a": 10, "b": 5})

		require.NoError(t, err)
		assert.Nil(t, match)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("identical document under another URL is rejected", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		require.NoError(t, store.Put(ctx, "https://www.ics.uci.edu/a", sieve.TokenFrequency{"a": 10, "b": 5}))
		d := crawl.NewDetector(store, 0.9, nil)

		match, err := d.Admit(ctx, "https://www.ics.uci.edu/b", sieve.TokenFrequency{"a": 10, "b": 5})

		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "https://www.ics.uci.edu/a", match.URL)
		assert.InDelta(t, 1.0, match.Score, 1e-12)
		assert.Equal(t, 1, store.Len(), "rejected document must not be stored")
	})

	t.Run("document is not compared against its own URL", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		d := crawl.NewDetector(store, 0.9, nil)
		freq := sieve.TokenFrequency{"a": 3}

		_, err := d.Admit(ctx, "https://www.ics.uci.edu/a", freq)
		require.NoError(t, err)
		match, err := d.Admit(ctx, "https://www.ics.uci.edu/a", freq)

		require.NoError(t, err)
		assert.Nil(t, match)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("score equal to the threshold is accepted", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		require.NoError(t, store.Put(ctx, "u1", sieve.TokenFrequency{"a": 4}))
		d := crawl.NewDetector(store, 0.5, nil)

		match, err := d.Admit(ctx, "u2", sieve.TokenFrequency{"a": 2})

		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("reports the best match", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		require.NoError(t, store.Put(ctx, "near", sieve.TokenFrequency{"a": 10, "b": 9}))
		require.NoError(t, store.Put(ctx, "exact", sieve.TokenFrequency{"a": 10, "b": 10}))
		d := crawl.NewDetector(store, 0.9, nil)

		match, err := d.Admit(ctx, "new", sieve.TokenFrequency{"a": 10, "b": 10})

		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "exact", match.URL)
	})

	t.Run("unreadable corpus starts empty and accepts", func(t *testing.T) {
		t.Parallel()

		var put atomic.Int32
		store := &mock.CorpusStore{
			LoadAllFn: func(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
				return nil, errors.New("corrupt")
			},
			PutFn: func(ctx context.Context, url string, freq sieve.TokenFrequency) error {
				put.Add(1)
				return nil
			},
		}
		d := crawl.NewDetector(store, 0.9, nil)

		match, err := d.Admit(context.Background(), "u", sieve.TokenFrequency{"a": 1})

		require.NoError(t, err)
		assert.Nil(t, match)
		assert.Equal(t, int32(1), put.Load())
		assert.Equal(t, 1, d.Len(context.Background()))
	})

	t.Run("store write failure is returned", func(t *testing.T) {
		t.Parallel()

		store := &mock.CorpusStore{
			LoadAllFn: func(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
				return nil, nil
			},
			PutFn: func(ctx context.Context, url string, freq sieve.TokenFrequency) error {
				return errors.New("disk full")
			},
		}
		d := crawl.NewDetector(store, 0.9, nil)

		_, err := d.Admit(context.Background(), "u", sieve.TokenFrequency{"a": 1})

		require.Error(t, err)
		assert.Equal(t, 0, d.Len(context.Background()))
	})

	t.Run("corpus is loaded once", func(t *testing.T) {
		t.Parallel()

		var loads atomic.Int32
		store := &mock.CorpusStore{
			LoadAllFn: func(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
				loads.Add(1)
				return map[string]sieve.TokenFrequency{}, nil
			},
			PutFn: func(ctx context.Context, url string, freq sieve.TokenFrequency) error {
				return nil
			},
		}
		d := crawl.NewDetector(store, 0.9, nil)

		for i := range 5 {
			_, err := d.Admit(context.Background(), fmt.Sprintf("u%d", i), sieve.TokenFrequency{fmt.Sprintf("t%d", i): 1})
			require.NoError(t, err)
		}

		assert.Equal(t, int32(1), loads.Load())
		assert.Equal(t, 5, d.Len(context.Background()))
	})

	t.Run("concurrent near-duplicates admit exactly one", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		d := crawl.NewDetector(store, 0.9, nil)

		var accepted atomic.Int32
		var g errgroup.Group
		for i := range 20 {
			g.Go(func() error {
				match, err := d.Admit(ctx, fmt.Sprintf("https://www.ics.uci.edu/copy%d", i), sieve.TokenFrequency{"a": 10, "b": 5})
				if err != nil {
					return err
				}
				if match == nil {
					accepted.Add(1)
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, int32(1), accepted.Load())
		assert.Equal(t, 1, store.Len())
	})

	t.Run("detectors sharing a store and lock see each other's admissions", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := inmem.NewCorpusStore()
		lock := inmem.NewLocker()
		a := crawl.NewDetector(store, 0.9, nil, crawl.WithLocker(lock))
		b := crawl.NewDetector(store, 0.9, nil, crawl.WithLocker(lock))

		// b reads the empty corpus before a writes to it.
		assert.Equal(t, 0, b.Len(ctx))

		match, err := a.Admit(ctx, "https://www.ics.uci.edu/1", sieve.TokenFrequency{"a": 10, "b": 5})
		require.NoError(t, err)
		assert.Nil(t, match)

		match, err = b.Admit(ctx, "https://www.ics.uci.edu/2", sieve.TokenFrequency{"a": 10, "b": 5})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "https://www.ics.uci.edu/1", match.URL)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("lock failure is returned", func(t *testing.T) {
		t.Parallel()

		lock := inmem.NewLocker()
		unlock, err := lock.Lock(context.Background())
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := crawl.NewDetector(inmem.NewCorpusStore(), 0.9, nil, crawl.WithLocker(lock))

		_, err = d.Admit(ctx, "https://www.ics.uci.edu/1", sieve.TokenFrequency{"a": 1})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDetector_Check(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := inmem.NewCorpusStore()
	require.NoError(t, store.Put(ctx, "u1", sieve.TokenFrequency{"a": 10, "b": 5}))
	d := crawl.NewDetector(store, 0.9, nil)

	assert.NotNil(t, d.Check(ctx, "u2", sieve.TokenFrequency{"a": 10, "b": 5}))
	assert.Nil(t, d.Check(ctx, "u2", sieve.TokenFrequency{"c": 1}))
	assert.Equal(t, 1, store.Len(), "check must not write")
}
