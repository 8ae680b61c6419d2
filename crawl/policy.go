package crawl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/sieve"
)

// Query strings ending in comment replies or revision-history parameters
// lead to pages of little value.
var blockedQueryPattern = regexp.MustCompile(`^.*(replytocom=\d+|version=\d+|difftype=\w+)$`)

// pdfPathPattern matches paths with a /pdf/ segment between other segments.
var pdfPathPattern = regexp.MustCompile(`^.+/pdf/.+`)

// Policy decides whether a URL is inside the crawl scope.
type Policy struct {
	fragments     []string
	blockedSuffix *regexp.Regexp
}

// NewPolicy creates a Policy accepting URLs that contain at least one of
// fragments and do not end in one of blockedExtensions.
func NewPolicy(fragments, blockedExtensions []string) *Policy {
	p := &Policy{fragments: append([]string(nil), fragments...)}
	if len(blockedExtensions) > 0 {
		quoted := make([]string, len(blockedExtensions))
		for i, ext := range blockedExtensions {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(strings.TrimPrefix(ext, ".")))
		}
		p.blockedSuffix = regexp.MustCompile(`^.*\.(` + strings.Join(quoted, "|") + `)$`)
	}
	return p
}

// IsValid reports whether the URL should be crawled.
// Returns EINVALID if the URL cannot be parsed; callers can tell
// "not a crawl target" apart from "not a URL".
func (p *Policy) IsValid(rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, sieve.Errorf(sieve.EINVALID, "malformed URL %q: %v", rawURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false, nil
	}
	if !p.inScope(rawURL) {
		return false, nil
	}

	query := strings.ToLower(u.RawQuery)
	if blockedQueryPattern.MatchString(query) || p.hasBlockedSuffix(query) {
		return false, nil
	}

	// Escaped so a percent-encoded dot does not read as an extension.
	path := strings.ToLower(u.EscapedPath())
	if pdfPathPattern.MatchString(path) {
		return false, nil
	}
	return !p.hasBlockedSuffix(path), nil
}

func (p *Policy) inScope(rawURL string) bool {
	for _, f := range p.fragments {
		if strings.Contains(rawURL, f) {
			return true
		}
	}
	return false
}

func (p *Policy) hasBlockedSuffix(s string) bool {
	return p.blockedSuffix != nil && p.blockedSuffix.MatchString(s)
}
