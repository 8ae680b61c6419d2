package sqlite_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/sieve/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSeenStore_Add(t *testing.T) {
	t.Parallel()

	t.Run("reports whether the URL was new", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := sqlite.NewSeenStore(newTestDB(t))

		added, err := store.Add(ctx, "https://a.ics.uci.edu/x")
		require.NoError(t, err)
		assert.True(t, added)

		added, err = store.Add(ctx, "https://a.ics.uci.edu/x")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("exactly one concurrent caller adds a URL", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := sqlite.NewSeenStore(newTestDB(t))

		var wins atomic.Int32
		var g errgroup.Group
		for range 8 {
			g.Go(func() error {
				added, err := store.Add(ctx, "https://a.ics.uci.edu/x")
				if added {
					wins.Add(1)
				}
				return err
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestSeenStore_Contains(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sqlite.NewSeenStore(newTestDB(t))

	seen, err := store.Contains(ctx, "https://a.ics.uci.edu/x")
	require.NoError(t, err)
	assert.False(t, seen)

	_, err = store.Add(ctx, "https://a.ics.uci.edu/x")
	require.NoError(t, err)

	seen, err = store.Contains(ctx, "https://a.ics.uci.edu/x")
	require.NoError(t, err)
	assert.True(t, seen)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
