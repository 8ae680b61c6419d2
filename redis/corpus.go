package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/fwojciec/sieve"
	"github.com/redis/go-redis/v9"
)

// Ensure CorpusStore implements sieve.CorpusStore at compile time.
var _ sieve.CorpusStore = (*CorpusStore)(nil)

// CorpusStore implements sieve.CorpusStore on a Redis hash mapping URL to
// JSON-encoded token frequencies.
type CorpusStore struct {
	client *Client
	logger *slog.Logger
}

// NewCorpusStore creates a new CorpusStore.
func NewCorpusStore(client *Client, logger *slog.Logger) *CorpusStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CorpusStore{client: client, logger: logger}
}

// Get returns the frequencies stored for url.
func (s *CorpusStore) Get(ctx context.Context, url string) (sieve.TokenFrequency, error) {
	raw, err := s.client.rdb.HGet(ctx, s.client.key("corpus"), url).Result()
	if errors.Is(err, redis.Nil) {
		return nil, sieve.Errorf(sieve.ENOTFOUND, "corpus entry %q not found", url)
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// Put stores url with HSETNX, leaving an existing entry untouched.
func (s *CorpusStore) Put(ctx context.Context, url string, freq sieve.TokenFrequency) error {
	if url == "" {
		return sieve.Errorf(sieve.EINVALID, "corpus URL required")
	}
	raw, err := json.Marshal(freq)
	if err != nil {
		return err
	}
	return s.client.rdb.HSetNX(ctx, s.client.key("corpus"), url, raw).Err()
}

// LoadAll returns the whole corpus. Entries that fail to decode are skipped.
func (s *CorpusStore) LoadAll(ctx context.Context) (map[string]sieve.TokenFrequency, error) {
	all, err := s.client.rdb.HGetAll(ctx, s.client.key("corpus")).Result()
	if err != nil {
		return nil, err
	}

	corpus := make(map[string]sieve.TokenFrequency, len(all))
	for url, raw := range all {
		freq, err := decode(raw)
		if err != nil {
			s.logger.Warn("skipping corrupt corpus entry", "url", url, "error", err)
			continue
		}
		corpus[url] = freq
	}
	return corpus, nil
}

// SaveAll writes every entry in one pipeline.
func (s *CorpusStore) SaveAll(ctx context.Context, corpus map[string]sieve.TokenFrequency) error {
	_, err := s.client.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for url, freq := range corpus {
			if url == "" {
				continue
			}
			raw, err := json.Marshal(freq)
			if err != nil {
				return err
			}
			pipe.HSetNX(ctx, s.client.key("corpus"), url, raw)
		}
		return nil
	})
	return err
}

func decode(raw string) (sieve.TokenFrequency, error) {
	var freq sieve.TokenFrequency
	if err := json.Unmarshal([]byte(raw), &freq); err != nil {
		return nil, err
	}
	if freq == nil {
		freq = sieve.TokenFrequency{}
	}
	return freq, nil
}
