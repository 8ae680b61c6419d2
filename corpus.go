package sieve

import "context"

// CorpusStore persists the token frequencies of every accepted document,
// keyed by URL. Entries are only ever appended: putting a URL that is
// already present leaves the stored entry unchanged.
type CorpusStore interface {
	// Get returns the token frequencies stored for the URL.
	// Returns ENOTFOUND if the URL is not in the corpus.
	Get(ctx context.Context, url string) (TokenFrequency, error)

	// Put adds the URL and its token frequencies to the corpus.
	Put(ctx context.Context, url string, freq TokenFrequency) error

	// LoadAll returns the whole corpus.
	// Unreadable or corrupt state yields an empty corpus rather than an error
	// wherever the implementation can tell the two apart.
	LoadAll(ctx context.Context) (map[string]TokenFrequency, error)

	// SaveAll adds every entry of the mapping to the corpus.
	SaveAll(ctx context.Context, corpus map[string]TokenFrequency) error
}

// Locker guards a critical section shared by every process that writes the
// same corpus. Lock blocks until the lock is held or ctx is done; the
// returned function releases it.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
