package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"social-manager/domain/dto"
	"social-manager/infrastructure/logger"
)

// healthTTL bounds how stale a cached health verdict may be. Five minutes
// keeps probe volume low without hiding a revocation for long.
const healthTTL = 5 * time.Minute

type IHealthCache interface {
	Get(ctx context.Context, channelID string) (*dto.ChannelHealth, bool)
	Set(ctx context.Context, channelID string, health *dto.ChannelHealth)
	Invalidate(ctx context.Context, channelID string)
}

// HealthCache stores recent channel health checks in Redis. A nil client
// disables caching entirely; every lookup is then a miss.
type HealthCache struct {
	client *redis.Client
}

func NewHealthCache(client *redis.Client) IHealthCache {
	return &HealthCache{client: client}
}

func healthKey(channelID string) string {
	return fmt.Sprintf("channel:health:%s", channelID)
}

func (c *HealthCache) Get(ctx context.Context, channelID string) (*dto.ChannelHealth, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, healthKey(channelID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().WithError(err).Warn("health cache read failed")
		}
		return nil, false
	}
	var health dto.ChannelHealth
	if err := json.Unmarshal(raw, &health); err != nil {
		return nil, false
	}
	return &health, true
}

func (c *HealthCache) Set(ctx context.Context, channelID string, health *dto.ChannelHealth) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(health)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, healthKey(channelID), raw, healthTTL).Err(); err != nil {
		logger.GetLogger().WithError(err).Warn("health cache write failed")
	}
}

func (c *HealthCache) Invalidate(ctx context.Context, channelID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, healthKey(channelID)).Err(); err != nil {
		logger.GetLogger().WithError(err).Warn("health cache invalidation failed")
	}
}

// NewRedisClient connects to Redis, or returns nil when no host is
// configured so callers run uncached.
func NewRedisClient(host, port, password string) *redis.Client {
	if host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithError(err).Warn("redis unreachable, caching disabled")
		return nil
	}
	return client
}
