package sieve

import "context"

// SeenStore persists every outbound URL ever yielded as a crawl candidate.
// The set is append-only.
type SeenStore interface {
	// Contains reports whether the URL has been seen.
	Contains(ctx context.Context, url string) (bool, error)

	// Add marks the URL as seen. It reports true if the URL was not
	// already present. The check and the insert happen atomically.
	Add(ctx context.Context, url string) (added bool, err error)
}
