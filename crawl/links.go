package crawl

import (
	"context"
	"net/url"
	"regexp"

	"github.com/fwojciec/sieve"
)

// rootRelativePattern matches hrefs such as "/about" but not "//host/x" or "/".
var rootRelativePattern = regexp.MustCompile(`^/[\p{L}\p{N}_]`)

// ExtractLinks turns the raw hrefs of a page into candidate URLs.
// Fragments are stripped and root-relative paths are resolved against the
// scheme and host of baseURL. Other relative forms ("../x", "./x",
// "//host/x") are passed through unresolved. Duplicates are kept.
// Returns EINVALID if baseURL cannot be parsed.
func ExtractLinks(baseURL string, hrefs []string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sieve.Errorf(sieve.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		link := sieve.Defragment(href)
		if link == "" {
			continue
		}
		if rootRelativePattern.MatchString(link) {
			link = base.Scheme + "://" + base.Host + link
		}
		links = append(links, link)
	}
	return links, nil
}

// FilterUnseen returns the URLs not yet in seen, in input order, adding
// each one to seen as soon as it is kept. A URL repeated later in the
// input is therefore dropped too.
func FilterUnseen(ctx context.Context, urls []string, seen sieve.SeenStore) ([]string, error) {
	var unseen []string
	for _, u := range urls {
		added, err := seen.Add(ctx, u)
		if err != nil {
			return nil, err
		}
		if added {
			unseen = append(unseen, u)
		}
	}
	return unseen, nil
}
