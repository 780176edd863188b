package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Siddarth2230/base62/pkg/metrics"
)

const keyPrefix = "base62:decode:"

var ErrCacheMiss = errors.New("cache miss")

// RedisCache is the shared L2 memo of decoded values, keyed by cleaned code.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis cache with default TTL
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl == 0 {
		ttl = 5 * time.Minute // default
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the decimal value stored for code, or ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, code string) (string, error) {
	val, err := r.client.Get(ctx, keyPrefix+code).Result()
	if err == redis.Nil {
		metrics.CacheMisses.WithLabelValues("l2").Inc()
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	metrics.CacheHits.WithLabelValues("l2").Inc()
	return val, nil
}

// Set stores the decimal value for code with the cache TTL.
func (r *RedisCache) Set(ctx context.Context, code, value string) error {
	return r.client.Set(ctx, keyPrefix+code, value, r.ttl).Err()
}

// Delete removes a key from Redis
func (r *RedisCache) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, keyPrefix+code).Err()
}
