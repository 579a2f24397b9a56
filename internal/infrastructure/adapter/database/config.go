package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/config"
)

// Config represents database configuration
type Config struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LockTimeout     time.Duration
	LogLevel        string
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTxRetries    int
}

// DefaultConfig returns a Config with default values
// No sensitive information is hardcoded - all must come from environment variables
func DefaultConfig() *Config {
	return &Config{
		Host:            configEnv("WL_DB_HOST"),
		Port:            configEnvAsInt("WL_DB_PORT", 5432),
		Username:        configEnv("WL_DB_USERNAME"),
		Password:        configEnv("WL_DB_PASSWORD"),
		Database:        configEnv("WL_DB_NAME"),
		SSLMode:         configEnvOrDefault("WL_DB_SSL_MODE", "disable"),
		MaxOpenConns:    configEnvAsInt("WL_DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    configEnvAsInt("WL_DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		LockTimeout:     time.Duration(configEnvAsInt("WL_DB_LOCK_TIMEOUT_MS", 2000)) * time.Millisecond,
		LogLevel:        configEnvOrDefault("WL_LOGGER_LEVEL", "info"),
		RetryAttempts:   3,
		RetryDelay:      time.Second,
		MaxTxRetries:    3,
	}
}

// NewConfigFromAppConfig adapts the application configuration to database configuration
func NewConfigFromAppConfig(conf *config.Config) *Config {
	dbConf := DefaultConfig()

	// Environment values win over file values for credentials
	if dbConf.Host == "" {
		dbConf.Host = conf.Database.Host
	}
	if conf.Database.Port != "" {
		if port := ParsePort(conf.Database.Port); port > 0 {
			dbConf.Port = port
		}
	}
	if dbConf.Username == "" {
		dbConf.Username = conf.Database.Username
	}
	if dbConf.Password == "" {
		dbConf.Password = conf.Database.Password
	}
	if dbConf.Database == "" {
		dbConf.Database = conf.Database.Database
	}

	if conf.Database.SSLMode != "" {
		dbConf.SSLMode = conf.Database.SSLMode
	}
	if conf.Database.MaxOpenConns > 0 {
		dbConf.MaxOpenConns = conf.Database.MaxOpenConns
	}
	if conf.Database.MaxIdleConns > 0 {
		dbConf.MaxIdleConns = conf.Database.MaxIdleConns
	}
	if conf.Database.ConnMaxLifetime > 0 {
		dbConf.ConnMaxLifetime = conf.Database.ConnMaxLifetime
	}
	if conf.Database.ConnMaxIdleTime > 0 {
		dbConf.ConnMaxIdleTime = conf.Database.ConnMaxIdleTime
	}
	if conf.Database.LockTimeoutMs > 0 {
		dbConf.LockTimeout = time.Duration(conf.Database.LockTimeoutMs) * time.Millisecond
	}
	if conf.Database.RetryAttempts > 0 {
		dbConf.RetryAttempts = conf.Database.RetryAttempts
	}
	if conf.Database.RetryDelay > 0 {
		dbConf.RetryDelay = conf.Database.RetryDelay
	}
	if conf.Store.MaxRetries > 0 {
		dbConf.MaxTxRetries = conf.Store.MaxRetries
	}
	if conf.Logger.Level != "" {
		dbConf.LogLevel = conf.Logger.Level
	}

	return dbConf
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
		"prefer":      true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("retry attempts must be positive, got: %d", c.RetryAttempts)
	}
	if c.LockTimeout < 0 {
		return errors.New("lock timeout must be non-negative")
	}

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// ParsePort converts a port string to an int, 0 when invalid
func ParsePort(port string) int {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}

// configEnv gets a value from environment variables with no default
func configEnv(key string) string {
	return os.Getenv(key)
}

// configEnvOrDefault gets a value from environment variables with a default value
func configEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// configEnvAsInt gets an integer value from environment variables with a default
func configEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
