package crawl

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sieve"
)

// TruncateURL shortens url to at most maxLen bytes for display. The tail of
// a URL tells pages apart, so the head is replaced with "...".
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-(maxLen-3):]
}

// FormatDecision renders a decision as one line: the verdict, the distinct
// token count when the page was tokenized, and the link count or the
// matched page.
func FormatDecision(d *sieve.Decision) string {
	var b strings.Builder
	b.WriteString(string(d.Verdict))
	if d.Tokens > 0 {
		fmt.Fprintf(&b, " tokens=%d", d.Tokens)
	}
	switch {
	case d.Match != nil:
		fmt.Fprintf(&b, " similar=%s score=%.3f", d.Match.URL, d.Match.Score)
	case d.Accepted():
		fmt.Fprintf(&b, " links=%d", len(d.Links))
	}
	return b.String()
}
