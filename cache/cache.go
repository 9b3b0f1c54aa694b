package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FeedKey is the single cache key the rendered global feed lives under.
	// The whole rendered fragment is cached as one unit, including whichever
	// page parameter produced it.
	FeedKey = "feed:index"
	// FeedTTL is how long a cached global feed stays valid. Writes do not
	// invalidate it; staleness inside this window is accepted behavior.
	FeedTTL = 20 * time.Second
)

// Miss is returned by Get when the key is absent or its TTL has expired.
var Miss = errors.New("cache: miss")

// Cache is a byte-value cache with per-entry TTL. It's injected rather than
// reached for globally, so tests can control time and clear it
// deterministically.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context, key string) error
}

// Redis implements Cache on top of a Redis client. Entries expire through
// Redis' own TTL handling, and concurrent recomputations simply race to Set:
// last writer wins, which is fine for a short-lived rendered fragment.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a Redis cache talking to the given address.
func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ensure the Redis struct properly implements the Cache interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ Cache = &Redis{}

// Get returns the cached bytes under key, or Miss if there are none.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, Miss
		}
		return nil, err
	}
	return data, nil
}

// Set stores value under key for the given TTL.
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Clear drops the entry under key, if any.
func (c *Redis) Clear(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the underlying client.
func (c *Redis) Close() error {
	return c.client.Close()
}
