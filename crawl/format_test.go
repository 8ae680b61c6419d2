package crawl_test

import (
	"testing"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"fits", "https://www.ics.uci.edu/", 40, "https://www.ics.uci.edu/"},
		{"keeps the tail", "https://www.ics.uci.edu/about/faculty", 12, "...t/faculty"},
		{"tiny limit", "https://www.ics.uci.edu/", 3, "htt"},
		{"zero limit", "https://www.ics.uci.edu/", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.TruncateURL(tt.url, tt.maxLen))
		})
	}
}

func TestFormatDecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    *sieve.Decision
		want string
	}{
		{
			name: "accepted",
			d:    &sieve.Decision{Verdict: sieve.VerdictAccepted, Tokens: 120, Links: []string{"a", "b"}},
			want: "accepted tokens=120 links=2",
		},
		{
			name: "duplicate",
			d: &sieve.Decision{
				Verdict: sieve.VerdictDuplicate,
				Tokens:  80,
				Match:   &sieve.Match{URL: "https://www.ics.uci.edu/a", Score: 0.95},
			},
			want: "duplicate tokens=80 similar=https://www.ics.uci.edu/a score=0.950",
		},
		{
			name: "skipped before tokenizing",
			d:    &sieve.Decision{Verdict: sieve.VerdictBadStatus},
			want: "bad_status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.FormatDecision(tt.d))
		})
	}
}
