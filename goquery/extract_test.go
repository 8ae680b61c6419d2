package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sieve/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns visible text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Lab</title></head>
<body><h1>Machine Learning</h1><p>Graduate <b>seminar</b> notes.</p></body></html>`

		result, err := goquery.NewExtractor().Extract([]byte(html))
		require.NoError(t, err)

		fields := strings.Fields(result.Text)
		assert.Equal(t, []string{"Lab", "Machine", "Learning", "Graduate", "seminar", "notes."}, fields)
	})

	t.Run("returns hrefs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<a href="/about">About</a>
<a name="anchor-only">No link</a>
<a href="">Empty</a>
<div><a href="https://www.ics.uci.edu/x#top">X</a></div>
<a href="/about">About again</a>
</body>`

		result, err := goquery.NewExtractor().Extract([]byte(html))
		require.NoError(t, err)

		assert.Equal(t, []string{"/about", "", "https://www.ics.uci.edu/x#top", "/about"}, result.Hrefs)
	})

	t.Run("returns no hrefs for page without anchors", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract([]byte("<p>plain</p>"))
		require.NoError(t, err)

		assert.Empty(t, result.Hrefs)
		assert.Equal(t, "plain", strings.TrimSpace(result.Text))
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract([]byte("<div><p>unclosed <a href='/x'>link"))
		require.NoError(t, err)

		assert.Equal(t, []string{"/x"}, result.Hrefs)
		assert.Contains(t, result.Text, "unclosed")
	})
}
