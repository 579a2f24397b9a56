package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/config"
)

// NewRedisClient configures a Redis client and verifies connectivity.
// A URL wins over host/port settings.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	opt, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// NewOptionalRedisClient configures a Redis client for the balance cache only.
// An unreachable server is logged and the client is kept: go-redis dials
// lazily, and the cache treats every failure as a miss until Redis is back.
func NewOptionalRedisClient(ctx context.Context, cfg config.CacheConfig, logger coreport.Logger) (*redis.Client, error) {
	opt, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable at start, balance cache degraded until it recovers", map[string]any{
			"addr":  opt.Addr,
			"error": err.Error(),
		})
	}

	return client, nil
}

func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		if cfg.Host == "" {
			return nil, fmt.Errorf("redis url or host is required")
		}
		opt = &redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opt.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeoutMs > 0 {
		opt.DialTimeout = time.Duration(cfg.DialTimeoutMs) * time.Millisecond
	}
	if cfg.ReadTimeoutMs > 0 {
		opt.ReadTimeout = time.Duration(cfg.ReadTimeoutMs) * time.Millisecond
	}
	if cfg.WriteTimeoutMs > 0 {
		opt.WriteTimeout = time.Duration(cfg.WriteTimeoutMs) * time.Millisecond
	}

	return opt, nil
}
