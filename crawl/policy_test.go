package crawl_test

import (
	"testing"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultPolicy() *crawl.Policy {
	cfg := sieve.DefaultConfig()
	return crawl.NewPolicy(cfg.AllowedFragments, cfg.BlockedExtensions)
}

func TestPolicy_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"in-scope https page", "https://www.ics.uci.edu/about/index.php", true},
		{"in-scope http page", "http://vision.ics.uci.edu/papers", true},
		{"department path on other host", "https://today.uci.edu/department/information_computer_sciences/news", true},
		{"stat subdomain", "https://www.stat.uci.edu/", true},
		{"out of scope host", "https://www.example.com/page.html", false},
		{"out of scope even without extension", "https://other.org/x", false},
		{"bare apex is out of scope", "https://ics.uci.edu/", false},
		{"ftp scheme", "ftp://www.ics.uci.edu/file", false},
		{"mailto", "mailto:someone@ics.uci.edu/", false},
		{"pdf extension", "https://www.ics.uci.edu/paper.pdf", false},
		{"uppercase pdf extension", "https://www.ics.uci.edu/PAPER.PDF", false},
		{"percent-encoded dot is not an extension", "https://www.ics.uci.edu/paper%2Epdf", true},
		{"pdf extension outside scope", "https://other.org/x.pdf", false},
		{"image extension", "https://www.ics.uci.edu/img/logo.png", false},
		{"archive extension", "https://www.ics.uci.edu/dist/src.tar", false},
		{"pdf path segment", "https://www.ics.uci.edu/pub/pdf/paper", false},
		{"pdf path segment at root is allowed", "https://www.ics.uci.edu/pdf/paper", true},
		{"extension-like directory", "https://www.ics.uci.edu/css/", true},
		{"reply to comment query", "https://www.ics.uci.edu/blog/post?replytocom=123", false},
		{"version query", "https://wiki.ics.uci.edu/doku.php?id=x&version=20", false},
		{"difftype query", "https://wiki.ics.uci.edu/doku.php?do=diff&difftype=sidebyside", false},
		{"uppercase blocked query", "https://wiki.ics.uci.edu/doku.php?VERSION=3", false},
		{"version not at end", "https://wiki.ics.uci.edu/doku.php?version=3&id=x", true},
		{"query naming a blocked file", "https://www.ics.uci.edu/download?file=slides.ppt", false},
		{"ordinary query", "https://www.ics.uci.edu/search?q=crawler", true},
	}

	p := newDefaultPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.IsValid(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_IsValid_MalformedURL(t *testing.T) {
	t.Parallel()

	p := newDefaultPolicy()

	ok, err := p.IsValid("http://www.ics.uci.edu/%zz")

	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, sieve.EINVALID, sieve.ErrorCode(err))
}

func TestPolicy_CustomConfiguration(t *testing.T) {
	t.Parallel()

	p := crawl.NewPolicy([]string{"example.com/docs/"}, []string{".ZIP"})

	ok, err := p.IsValid("https://example.com/docs/guide")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.IsValid("https://example.com/docs/bundle.zip")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.IsValid("https://example.com/docs/paper.pdf")
	require.NoError(t, err)
	assert.True(t, ok, "pdf is only blocked when configured")
}
