package transport

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultCacheTTL bounds how long a fetched blob stays cached under its
// source URL key.
const defaultCacheTTL = 15 * time.Minute

// CacheFetcher wraps blob fetches in a Redis read-through cache keyed by
// source URL, honoring the façade's `cache` feed option (spec §6): callers
// construct one only when caching is enabled for a feed.
type CacheFetcher struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheFetcher connects to a Redis-compatible backend at addr (e.g.
// "localhost:6379").
func NewCacheFetcher(addr, password string, db int) (*CacheFetcher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &CacheFetcher{client: client, ttl: defaultCacheTTL}, nil
}

// Get returns the cached bytes for source, if present and unexpired.
func (c *CacheFetcher) Get(ctx context.Context, source string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKey(source)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data under source's cache key with the configured TTL.
func (c *CacheFetcher) Set(ctx context.Context, source string, data []byte) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, cacheKey(source), data, c.ttl)
}

func cacheKey(source string) string {
	return "ixdata:blob:" + source
}
