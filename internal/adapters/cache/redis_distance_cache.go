package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDistanceCache is a Redis-backed cache for computed pair distances.
// Keys are normalized to the unordered pair by the caller; a zero TTL keeps
// entries indefinitely (coordinates are static).
type RedisDistanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDistanceCache(client *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client}
}

func pairField(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "dist:" + a + "|" + b
}

// Get fetches a cached distance for the unordered pair.
func (c *RedisDistanceCache) Get(ctx context.Context, a, b string) (float64, bool, error) {
	if c.Client == nil {
		return 0, false, errors.New("distance cache: redis client is nil")
	}

	v, err := c.Client.Get(ctx, pairField(a, b)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance cache: %w", err)
	}

	km, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("get distance cache: parse value %q: %w", v, err)
	}

	return km, true, nil
}

// Put stores a computed distance for the unordered pair.
func (c *RedisDistanceCache) Put(ctx context.Context, a, b string, km float64) error {
	if c.Client == nil {
		return errors.New("distance cache: redis client is nil")
	}

	v := strconv.FormatFloat(km, 'f', -1, 64)
	if err := c.Client.Set(ctx, pairField(a, b), v, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert distance cache: %w", err)
	}

	return nil
}
