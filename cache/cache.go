package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache wraps a Redis client used to memoize expensive lookups. A nil
// Cache is valid and simply disables memoization.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis at the given address. An empty address disables
// caching.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// Memoize caches the result of fn in Redis under key for ttl. Cache
// failures are treated as misses: fn's result is always returned even when
// Redis is unreachable.
func Memoize[T any](c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var result T
	if c == nil {
		return fn()
	}

	ctx := context.Background()

	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(cachedData, &result); jsonErr == nil {
			return result, nil
		}
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	cacheData, _ := json.Marshal(result)
	c.rdb.Set(ctx, key, cacheData, ttl)

	return result, nil
}
