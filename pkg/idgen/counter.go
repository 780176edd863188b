package idgen

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Siddarth2230/base62/pkg/base62"
)

const DefaultCounterKey = "base62:counter"

type CounterGenerator struct {
	redis *redis.Client
	key   string
}

func NewCounterGenerator(redisClient *redis.Client, key string) *CounterGenerator {
	if key == "" {
		key = DefaultCounterKey
	}
	return &CounterGenerator{redis: redisClient, key: key}
}

// Generate returns the next counter value as a base62 code.
// Redis INCR keeps the sequence unique across processes.
func (g *CounterGenerator) Generate(ctx context.Context) (string, error) {
	val, err := g.redis.Incr(ctx, g.key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment counter %s: %w", g.key, err)
	}
	return base62.EncodeUint64(uint64(val)), nil
}

func (g *CounterGenerator) Name() string { return "counter" }
