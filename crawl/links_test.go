package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
	"github.com/fwojciec/sieve/inmem"
	"github.com/fwojciec/sieve/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves root-relative paths against scheme and host", func(t *testing.T) {
		t.Parallel()

		links, err := crawl.ExtractLinks("https://www.ics.uci.edu:8443/dept/index.html?x=1", []string{"/about", "/_private"})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.ics.uci.edu:8443/about",
			"https://www.ics.uci.edu:8443/_private",
		}, links)
	})

	t.Run("strips fragments and skips empty hrefs", func(t *testing.T) {
		t.Parallel()

		links, err := crawl.ExtractLinks("https://www.ics.uci.edu/", []string{
			"https://www.ics.uci.edu/a#section",
			"#top",
			"",
			"/b#c",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://www.ics.uci.edu/a", "https://www.ics.uci.edu/b"}, links)
	})

	t.Run("passes other relative forms through unresolved", func(t *testing.T) {
		t.Parallel()

		hrefs := []string{"../x", "./y", "//cdn.ics.uci.edu/z", "page.html", "/"}

		links, err := crawl.ExtractLinks("https://www.ics.uci.edu/dept/", hrefs)

		require.NoError(t, err)
		assert.Equal(t, hrefs, links)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()

		links, err := crawl.ExtractLinks("https://www.ics.uci.edu/", []string{"/a", "/a#x", "/a"})

		require.NoError(t, err)
		assert.Len(t, links, 3)
	})

	t.Run("rejects malformed base URL", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.ExtractLinks("http://[::1", []string{"/a"})

		assert.Equal(t, sieve.EINVALID, sieve.ErrorCode(err))
	})
}

func TestFilterUnseen(t *testing.T) {
	t.Parallel()

	t.Run("second pass over the same list yields nothing", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		seen := inmem.NewSeenStore()
		urls := []string{"https://www.ics.uci.edu/a", "https://www.ics.uci.edu/b"}

		first, err := crawl.FilterUnseen(ctx, urls, seen)
		require.NoError(t, err)
		second, err := crawl.FilterUnseen(ctx, urls, seen)
		require.NoError(t, err)

		assert.Equal(t, urls, first)
		assert.Empty(t, second)
	})

	t.Run("drops repeats within the same list", func(t *testing.T) {
		t.Parallel()

		seen := inmem.NewSeenStore()

		got, err := crawl.FilterUnseen(context.Background(), []string{"a", "b", "a", "c", "b"}, seen)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		seen := &mock.SeenStore{
			AddFn: func(ctx context.Context, url string) (bool, error) {
				return false, errors.New("store down")
			},
		}

		_, err := crawl.FilterUnseen(context.Background(), []string{"a"}, seen)

		require.Error(t, err)
	})
}
