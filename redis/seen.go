package redis

import (
	"context"

	"github.com/fwojciec/sieve"
)

// Ensure SeenStore implements sieve.SeenStore at compile time.
var _ sieve.SeenStore = (*SeenStore)(nil)

// SeenStore implements sieve.SeenStore on a Redis set.
type SeenStore struct {
	client *Client
}

// NewSeenStore creates a new SeenStore.
func NewSeenStore(client *Client) *SeenStore {
	return &SeenStore{client: client}
}

// Contains reports whether url is a member of the seen set.
func (s *SeenStore) Contains(ctx context.Context, url string) (bool, error) {
	return s.client.rdb.SIsMember(ctx, s.client.key("seen"), url).Result()
}

// Add inserts url with SADD, which reports whether the member was new.
func (s *SeenStore) Add(ctx context.Context, url string) (bool, error) {
	n, err := s.client.rdb.SAdd(ctx, s.client.key("seen"), url).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Count returns the number of seen URLs.
func (s *SeenStore) Count(ctx context.Context) (int64, error) {
	return s.client.rdb.SCard(ctx, s.client.key("seen")).Result()
}
