package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/sieve"
)

// Compile-time interface verification.
var _ sieve.SeenStore = (*SeenStore)(nil)

// SeenStore implements sieve.SeenStore using SQLite.
type SeenStore struct {
	db *DB
}

// NewSeenStore creates a new SeenStore.
func NewSeenStore(db *DB) *SeenStore {
	return &SeenStore{db: db}
}

// Contains reports whether the URL has been seen.
func (s *SeenStore) Contains(ctx context.Context, url string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_urls WHERE url = ?`, url).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Add inserts the URL. The insert is a single statement, so concurrent
// callers adding the same URL see exactly one success.
func (s *SeenStore) Add(ctx context.Context, url string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO seen_urls (url, seen_at) VALUES (?, ?)
		ON CONFLICT(url) DO NOTHING
	`, url, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Count returns the number of seen URLs.
func (s *SeenStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_urls`).Scan(&n)
	return n, err
}
