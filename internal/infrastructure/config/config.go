package config

import (
	"errors"
	"fmt"
	"time"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Cache drivers
const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
	CacheDriverNone   = "none"
)

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Store       StoreConfig       `mapstructure:"store"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	LockTimeoutMs   int64         `mapstructure:"lockTimeoutMs"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	ResetOnStart    bool          `mapstructure:"resetOnStart"`
}

// StoreConfig selects and tunes the wallet store
type StoreConfig struct {
	Driver             string `mapstructure:"driver"`
	OperationTimeoutMs int64  `mapstructure:"operationTimeoutMs"`
	MaxRetries         int    `mapstructure:"maxRetries"`
}

// OperationTimeout returns the bound applied to each store call
func (c StoreConfig) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutMs) * time.Millisecond
}

// CacheConfig selects and tunes the balance cache
type CacheConfig struct {
	Driver              string `mapstructure:"driver"`
	URL                 string `mapstructure:"url"`
	Host                string `mapstructure:"host"`
	Port                string `mapstructure:"port"`
	Password            string `mapstructure:"password"`
	DB                  int    `mapstructure:"db"`
	TTLSeconds          int    `mapstructure:"ttlSeconds"`
	KeyPrefix           string `mapstructure:"keyPrefix"`
	OperationTimeoutMs  int64  `mapstructure:"operationTimeoutMs"`
	PoolSize            int    `mapstructure:"poolSize"`
	MinIdleConns        int    `mapstructure:"minIdleConns"`
	DialTimeoutMs       int64  `mapstructure:"dialTimeoutMs"`
	ReadTimeoutMs       int64  `mapstructure:"readTimeoutMs"`
	WriteTimeoutMs      int64  `mapstructure:"writeTimeoutMs"`
	InvalidateOnFailure bool   `mapstructure:"invalidateOnFailure"`
}

// TTL returns how long a cached balance stays valid
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// OperationTimeout returns the bound applied to each cache call
func (c CacheConfig) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutMs) * time.Millisecond
}

// Addr returns host:port for the redis server
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IdempotencyConfig contains settings for Idempotency-Key replay
type IdempotencyConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	TTL         time.Duration `mapstructure:"ttl"`
	InFlightTTL time.Duration `mapstructure:"inFlightTtl"` // lifetime of the in-progress marker
	KeyPrefix   string        `mapstructure:"keyPrefix"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// AllowsReset reports whether destructive schema resets are permitted
func (c *Config) AllowsReset() bool {
	return c.Database.ResetOnStart && (c.Environment == Development || c.Environment == Test)
}

// Validate checks required values before any component is built
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database host is required")
		}
		if c.Database.Username == "" {
			return errors.New("database username is required")
		}
		if c.Database.Database == "" {
			return errors.New("database name is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
	if c.Store.OperationTimeoutMs < 0 {
		return fmt.Errorf("store operation timeout must be non-negative, got: %d", c.Store.OperationTimeoutMs)
	}

	switch c.Cache.Driver {
	case CacheDriverRedis:
		if c.Cache.URL == "" && c.Cache.Host == "" {
			return errors.New("cache url or host is required for the redis driver")
		}
	case CacheDriverMemory, CacheDriverNone:
	default:
		return fmt.Errorf("unsupported cache driver: %s", c.Cache.Driver)
	}
	if c.Cache.Driver != CacheDriverNone && c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache ttl must be positive, got: %d", c.Cache.TTLSeconds)
	}

	if c.Idempotency.Enabled {
		if c.Cache.Driver != CacheDriverRedis {
			return errors.New("idempotency requires the redis cache driver")
		}
		if c.Idempotency.TTL <= 0 {
			return errors.New("idempotency ttl must be positive")
		}
		if c.Idempotency.InFlightTTL < 0 {
			return errors.New("idempotency inFlightTtl must not be negative")
		}
	}

	if c.Database.ResetOnStart && c.Environment == Production {
		return errors.New("database.resetOnStart is not allowed in production")
	}

	return nil
}
