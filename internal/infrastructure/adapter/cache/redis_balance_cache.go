package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainerr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	cacheport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// RedisBalanceCache stores balances in Redis with a TTL.
// Every Redis failure is logged and absorbed: a failed Get is a miss and a
// failed Put or Invalidate is a no-op.
type RedisBalanceCache struct {
	client    redis.Cmdable
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
	logger    coreport.Logger
}

var _ cacheport.BalanceCache = (*RedisBalanceCache)(nil)

// RedisBalanceCacheOptions tunes a RedisBalanceCache
type RedisBalanceCacheOptions struct {
	TTL              time.Duration
	KeyPrefix        string
	OperationTimeout time.Duration
}

// NewRedisBalanceCache creates a new RedisBalanceCache
func NewRedisBalanceCache(client redis.Cmdable, opts RedisBalanceCacheOptions, logger coreport.Logger) *RedisBalanceCache {
	return &RedisBalanceCache{
		client:    client,
		ttl:       opts.TTL,
		keyPrefix: opts.KeyPrefix,
		timeout:   opts.OperationTimeout,
		logger:    logger,
	}
}

func (c *RedisBalanceCache) key(walletID uuid.UUID) string {
	return c.keyPrefix + walletID.String()
}

func (c *RedisBalanceCache) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Put stores the balance with the configured TTL
func (c *RedisBalanceCache) Put(ctx context.Context, walletID uuid.UUID, balance int64) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.client.Set(ctx, c.key(walletID), balance, c.ttl).Err(); err != nil {
		c.absorb("Failed to cache wallet balance", walletID, err)
	}
}

// Get returns the cached balance; any failure or malformed value is a miss
func (c *RedisBalanceCache) Get(ctx context.Context, walletID uuid.UUID) (int64, bool) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key(walletID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.absorb("Failed to read cached wallet balance", walletID, err)
		}
		return 0, false
	}

	balance, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || balance < 0 {
		c.logger.Warn("Discarding malformed cached wallet balance", map[string]any{
			"wallet_id": walletID.String(),
			"value":     raw,
		})
		c.Invalidate(ctx, walletID)
		return 0, false
	}

	return balance, true
}

// Invalidate removes the cached balance
func (c *RedisBalanceCache) Invalidate(ctx context.Context, walletID uuid.UUID) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.client.Del(ctx, c.key(walletID)).Err(); err != nil {
		c.absorb("Failed to invalidate cached wallet balance", walletID, err)
	}
}

// absorb logs a Redis failure; it never reaches the caller
func (c *RedisBalanceCache) absorb(message string, walletID uuid.UUID, err error) {
	c.logger.Warn(message, map[string]any{
		"wallet_id": walletID.String(),
		"error":     fmt.Errorf("%w: %v", domainerr.ErrCacheUnavailable, err).Error(),
	})
}
