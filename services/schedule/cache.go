// File: services/schedule/cache.go
package schedule

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"voluntree/models"
)

// DigestCache keeps computed slot digests between mutations. Purely an
// optimization: every mutation invalidates, and cache failures are treated as
// misses.
type DigestCache interface {
	Get(ctx context.Context, recurrenceID string) (*models.SlotDigest, bool)
	Set(ctx context.Context, recurrenceID string, digest *models.SlotDigest)
	Invalidate(ctx context.Context, recurrenceID string)
}

// RedisDigestCache backs DigestCache with the shared Redis cache client.
type RedisDigestCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewRedisDigestCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDigestCache {
	return &RedisDigestCache{Client: client, TTL: ttl, Logger: logger}
}

func (c *RedisDigestCache) key(id string) string { return "digest:" + id }

func (c *RedisDigestCache) Get(ctx context.Context, recurrenceID string) (*models.SlotDigest, bool) {
	data, err := c.Client.Get(ctx, c.key(recurrenceID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("digest cache read failed", zap.String("recurrenceId", recurrenceID), zap.Error(err))
		}
		return nil, false
	}
	var digest models.SlotDigest
	if err := json.Unmarshal([]byte(data), &digest); err != nil {
		c.Logger.Warn("digest cache entry corrupt", zap.String("recurrenceId", recurrenceID), zap.Error(err))
		return nil, false
	}
	return &digest, true
}

func (c *RedisDigestCache) Set(ctx context.Context, recurrenceID string, digest *models.SlotDigest) {
	data, err := json.Marshal(digest)
	if err != nil {
		c.Logger.Warn("digest cache marshal failed", zap.String("recurrenceId", recurrenceID), zap.Error(err))
		return
	}
	if err := c.Client.Set(ctx, c.key(recurrenceID), data, c.TTL).Err(); err != nil {
		c.Logger.Warn("digest cache write failed", zap.String("recurrenceId", recurrenceID), zap.Error(err))
	}
}

func (c *RedisDigestCache) Invalidate(ctx context.Context, recurrenceID string) {
	if err := c.Client.Del(ctx, c.key(recurrenceID)).Err(); err != nil {
		c.Logger.Warn("digest cache invalidate failed", zap.String("recurrenceId", recurrenceID), zap.Error(err))
	}
}
