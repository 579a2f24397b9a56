package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/config"
	timeprovider "github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/time"
)

func cacheConfig(url, host string) config.CacheConfig {
	return config.CacheConfig{
		Driver:        config.CacheDriverRedis,
		URL:           url,
		Host:          host,
		Port:          "6379",
		PoolSize:      7,
		ReadTimeoutMs: 250,
	}
}

func TestMemoryBalanceCache(t *testing.T) {
	ctx := context.Background()
	clock := timeprovider.NewManualTimeProvider(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	t.Run("Put Get Invalidate", func(t *testing.T) {
		cache := NewMemoryBalanceCache(time.Minute, clock)
		id := uuid.New()

		cache.Put(ctx, id, 42)
		balance, ok := cache.Get(ctx, id)
		require.True(t, ok)
		assert.Equal(t, int64(42), balance)

		cache.Invalidate(ctx, id)
		_, ok = cache.Get(ctx, id)
		assert.False(t, ok)
	})

	t.Run("Expired entries are misses and get evicted", func(t *testing.T) {
		cache := NewMemoryBalanceCache(time.Minute, clock)
		id := uuid.New()

		cache.Put(ctx, id, 7)
		clock.Advance(time.Minute)

		_, ok := cache.Get(ctx, id)
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("Concurrent access", func(t *testing.T) {
		cache := NewMemoryBalanceCache(time.Hour, clock)
		id := uuid.New()

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(v int64) {
				defer wg.Done()
				cache.Put(ctx, id, v)
				cache.Get(ctx, id)
			}(int64(i))
		}
		wg.Wait()

		_, ok := cache.Get(ctx, id)
		assert.True(t, ok)
	})
}

func TestNoopBalanceCache(t *testing.T) {
	cache := NewNoopBalanceCache()
	id := uuid.New()

	cache.Put(context.Background(), id, 5)
	_, ok := cache.Get(context.Background(), id)
	assert.False(t, ok)
	cache.Invalidate(context.Background(), id)
}
