package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sieve"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sieve.CorpusStore = (*CorpusStore)(nil)

// CorpusStore implements sieve.CorpusStore using SQLite.
// Token frequencies are stored as JSON alongside an xxHash of the JSON,
// so damaged rows can be recognized and skipped.
type CorpusStore struct {
	db *DB
}

// NewCorpusStore creates a new CorpusStore.
func NewCorpusStore(db *DB) *CorpusStore {
	return &CorpusStore{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// Get retrieves the token frequencies stored for a URL.
func (s *CorpusStore) Get(ctx context.Context, url string) (sieve.TokenFrequency, error) {
	var raw, hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT frequencies, content_hash
		FROM corpus
		WHERE url = ?
	`, url).Scan(&raw, &hash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sieve.Errorf(sieve.ENOTFOUND, "corpus entry %q not found", url)
	}
	if err != nil {
		return nil, err
	}
	return decodeFrequencies(raw, hash)
}

// Put inserts the URL unless it is already in the corpus.
func (s *CorpusStore) Put(ctx context.Context, url string, freq sieve.TokenFrequency) error {
	return putEntry(ctx, s.db.db, url, freq)
}

// LoadAll returns the whole corpus. Rows that fail to decode or whose
// hash does not match their content are skipped.
func (s *CorpusStore) LoadAll(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, frequencies, content_hash FROM corpus`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	corpus := make(map[string]sieve.TokenFrequency)
	for rows.Next() {
		var url, raw, hash string
		if err := rows.Scan(&url, &raw, &hash); err != nil {
			return nil, err
		}
		freq, err := decodeFrequencies(raw, hash)
		if err != nil {
			continue
		}
		corpus[url] = freq
	}
	return corpus, rows.Err()
}

// SaveAll inserts every entry not already present in one transaction.
func (s *CorpusStore) SaveAll(ctx context.Context, corpus map[string]sieve.TokenFrequency) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for url, freq := range corpus {
		if err := putEntry(ctx, tx, url, freq); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Count returns the number of corpus entries.
func (s *CorpusStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM corpus`).Scan(&n)
	return n, err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putEntry(ctx context.Context, db execer, url string, freq sieve.TokenFrequency) error {
	if url == "" {
		return sieve.Errorf(sieve.EINVALID, "corpus URL required")
	}
	raw, err := json.Marshal(freq)
	if err != nil {
		return fmt.Errorf("failed to encode frequencies: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO corpus (id, url, frequencies, distinct_tokens, total_tokens, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`, uuid.New().String(), url, string(raw), freq.Distinct(), freq.Total(), hashContent(raw),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func decodeFrequencies(raw, hash string) (sieve.TokenFrequency, error) {
	if hashContent([]byte(raw)) != hash {
		return nil, sieve.Errorf(sieve.EINTERNAL, "corpus entry hash mismatch")
	}
	var freq sieve.TokenFrequency
	if err := json.Unmarshal([]byte(raw), &freq); err != nil {
		return nil, fmt.Errorf("failed to decode frequencies: %w", err)
	}
	if freq == nil {
		freq = sieve.TokenFrequency{}
	}
	return freq, nil
}
