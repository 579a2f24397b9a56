package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromViperDefaults(t *testing.T) {
	cfg, err := LoadFromViper(viper.New(), Test)
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Store.OperationTimeout())

	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL())
	assert.Equal(t, "wallet:balance:", cfg.Cache.KeyPrefix)
	assert.Equal(t, 500*time.Millisecond, cfg.Cache.OperationTimeout())
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr())
	assert.False(t, cfg.Cache.InvalidateOnFailure)

	assert.False(t, cfg.Idempotency.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, 30*time.Second, cfg.Idempotency.InFlightTTL)
}

func TestLoadFromViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("store.driver", StoreDriverMemory)
	v.Set("cache.driver", CacheDriverMemory)
	v.Set("cache.ttlSeconds", 5)
	v.Set("idempotency.ttl", "90m")

	cfg, err := LoadFromViper(v, Development)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL())
	assert.Equal(t, 90*time.Minute, cfg.Idempotency.TTL)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("WL_ENV", "TEST")
	t.Setenv("WL_STORE_DRIVER", StoreDriverMemory)
	t.Setenv("WL_CACHE_DRIVER", CacheDriverNone)
	t.Setenv("WL_CACHE_TTL_SECONDS", "120")
	t.Setenv("WL_CACHE_INVALIDATE_ON_FAILURE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, CacheDriverNone, cfg.Cache.Driver)
	assert.Equal(t, 120*time.Second, cfg.Cache.TTL())
	assert.True(t, cfg.Cache.InvalidateOnFailure)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadFromViper(viper.New(), Development)
		require.NoError(t, err)
		cfg.Database.Host = "localhost"
		cfg.Database.Username = "wallet"
		cfg.Database.Database = "wallet_ledger"
		return cfg
	}

	t.Run("Valid configuration", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"Invalid port", func(c *Config) { c.Server.Port = 0 }},
		{"Unknown store driver", func(c *Config) { c.Store.Driver = "mongo" }},
		{"Missing database host", func(c *Config) { c.Database.Host = "" }},
		{"Unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"Zero cache ttl", func(c *Config) { c.Cache.TTLSeconds = 0 }},
		{"Redis without address", func(c *Config) { c.Cache.Host = ""; c.Cache.URL = "" }},
		{"Idempotency without redis", func(c *Config) {
			c.Idempotency.Enabled = true
			c.Cache.Driver = CacheDriverMemory
		}},
		{"Negative in-flight ttl", func(c *Config) {
			c.Cache.Driver = CacheDriverRedis
			c.Idempotency.Enabled = true
			c.Idempotency.TTL = time.Hour
			c.Idempotency.InFlightTTL = -time.Second
		}},
		{"Reset in production", func(c *Config) {
			c.Environment = Production
			c.Database.ResetOnStart = true
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("Memory store needs no database", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Driver = StoreDriverMemory
		cfg.Database = DatabaseConfig{}
		cfg.Cache.Driver = CacheDriverNone
		cfg.Cache.TTLSeconds = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestAllowsReset(t *testing.T) {
	cfg := &Config{Environment: Development, Database: DatabaseConfig{ResetOnStart: true}}
	assert.True(t, cfg.AllowsReset())

	cfg.Environment = Production
	assert.False(t, cfg.AllowsReset())

	cfg.Environment = Test
	cfg.Database.ResetOnStart = false
	assert.False(t, cfg.AllowsReset())
}
