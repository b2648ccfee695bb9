package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"social-manager/domain/dto"
	"social-manager/infrastructure/cache"
)

// TestHealthCache_NilClient verifies a cache built without Redis degrades to
// a no-op instead of panicking.
func TestHealthCache_NilClient(t *testing.T) {
	healthCache := cache.NewHealthCache(nil)
	assert.NotNil(t, healthCache)

	ctx := context.Background()
	healthCache.Set(ctx, "ch-1", &dto.ChannelHealth{IsValid: true})

	got, ok := healthCache.Get(ctx, "ch-1")
	assert.False(t, ok)
	assert.Nil(t, got)

	healthCache.Invalidate(ctx, "ch-1")
}

func TestNewRedisClient_NoHostDisablesCaching(t *testing.T) {
	assert.Nil(t, cache.NewRedisClient("", "6379", ""))
}
