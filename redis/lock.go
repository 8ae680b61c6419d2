package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/sieve"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ sieve.Locker = (*Lock)(nil)

// DefaultLockTTL bounds how long a crashed holder keeps the lock.
const DefaultLockTTL = 30 * time.Second

const lockPollInterval = 20 * time.Millisecond

// unlockScript deletes the key only while it still holds the caller's token,
// so a holder whose lease expired cannot release someone else's lock.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a lease-based mutex held in a single Redis key. It serializes
// corpus updates across every process sharing the key prefix.
type Lock struct {
	client *Client
	key    string
	ttl    time.Duration
}

// NewLock creates a Lock stored under name. A non-positive ttl uses
// DefaultLockTTL.
func NewLock(client *Client, name string, ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &Lock{client: client, key: client.key(name), ttl: ttl}
}

// Lock polls until the key is acquired or ctx is done.
func (l *Lock) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", l.key, err)
		}
		if ok {
			return func() {
				// Released with a fresh context so a cancelled caller still unlocks.
				unlockScript.Run(context.Background(), l.client.rdb, []string{l.key}, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
