// Package redis provides Redis-backed corpus and seen-URL stores, so several
// crawler processes can share one corpus and one frontier.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by this package.
const DefaultKeyPrefix = "sieve:"

// Client wraps a Redis connection and the key prefix shared by the stores.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// NewClient creates a Client for the server at addr.
func NewClient(addr, prefix string) *Client {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Client{
		rdb:    redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) key(name string) string {
	return c.prefix + name
}
