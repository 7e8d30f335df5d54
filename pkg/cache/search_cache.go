package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SearchCacheTTL bounds how long a cached result set may be served.
	SearchCacheTTL = 5 * time.Minute

	searchCacheKeyPrefix = "search"
)

// SearchCache stores keyword search results as JSON strings.
//
// Every key lives under a namespace unique to this SearchCache, so results
// never leak between processes sharing one Redis or across a restart:
//
//	search:{instance}:gen                  generation counter
//	search:{instance}:{gen}:{keyword}      cached results
//
// Invalidate bumps the generation, so every earlier entry becomes
// unreachable at once and simply expires.
type SearchCache struct {
	client   *RedisClient
	ttl      time.Duration
	instance string
}

// NewSearchCache creates a SearchCache backed by the given RedisClient.
func NewSearchCache(r *RedisClient) *SearchCache {
	return &SearchCache{client: r, ttl: SearchCacheTTL, instance: uuid.NewString()}
}

// Get decodes the cached results for keyword into dst and returns the
// generation it looked under. On a miss it returns that generation together
// with redis.Nil; pass it to Set so the results land where they were computed.
func (c *SearchCache) Get(ctx context.Context, keyword string, dst any) (int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, err
	}
	raw, err := c.client.Client().Get(ctx, c.entryKey(gen, keyword)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return gen, redis.Nil
		}
		return gen, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return gen, fmt.Errorf("cache decode: %w", err)
	}
	return gen, nil
}

// Set stores results for keyword under generation gen. If the cache was
// invalidated since gen was read, the entry is unreachable and expires unseen.
func (c *SearchCache) Set(ctx context.Context, keyword string, gen int64, results any) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.entryKey(gen, keyword), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate makes every cached search result stale.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	pipe := c.client.Client().TxPipeline()
	pipe.Incr(ctx, c.generationKey())
	// The counter outlives every entry written under it; once it expires
	// all of its entries are gone too and counting restarts at 0.
	pipe.Expire(ctx, c.generationKey(), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// generation reads the counter. A missing counter reads as 0.
func (c *SearchCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Client().Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

func (c *SearchCache) generationKey() string {
	return fmt.Sprintf("%s:%s:gen", searchCacheKeyPrefix, c.instance)
}

func (c *SearchCache) entryKey(gen int64, keyword string) string {
	return searchKey(c.instance, gen, keyword)
}

func searchKey(instance string, gen int64, keyword string) string {
	return fmt.Sprintf("%s:%s:%d:%s", searchCacheKeyPrefix, instance, gen, strings.ToLower(keyword))
}
