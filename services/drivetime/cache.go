// File: services/drivetime/cache.go
package drivetime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotsmith/utils"
)

// Cache stores resolved drive durations keyed by route.
type Cache interface {
	Get(ctx context.Context, origin, destination string) (int, bool)
	Put(ctx context.Context, origin, destination string, minutes int)
}

// RedisCache keeps route durations in Redis with a TTL.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func cacheKey(origin, destination string) string {
	return fmt.Sprintf("drivetime:%s|%s",
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)))
}

func (c *RedisCache) Get(ctx context.Context, origin, destination string) (int, bool) {
	val, err := c.Client.Get(ctx, cacheKey(origin, destination)).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("drive time cache read failed", zap.Error(err))
		}
		return 0, false
	}
	minutes, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return minutes, true
}

func (c *RedisCache) Put(ctx context.Context, origin, destination string, minutes int) {
	if err := c.Client.Set(ctx, cacheKey(origin, destination), strconv.Itoa(minutes), c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("drive time cache write failed", zap.Error(err))
	}
}
