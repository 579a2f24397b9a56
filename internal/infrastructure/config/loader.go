package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "WL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// .env is optional; a missing file is not an error
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Defaults plus environment are enough to run the in-memory stack
		fmt.Println("Warning: no config file found for environment", env)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	return decode(v, env)
}

// LoadFromViper decodes a prepared viper instance; used by tests and tools
func LoadFromViper(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)
	return decode(v, env)
}

func decode(v *viper.Viper, env string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return nil
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.lockTimeoutMs", 2000)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.resetOnStart", false)

	v.SetDefault("store.driver", StoreDriverPostgres)
	v.SetDefault("store.operationTimeoutMs", 3000)
	v.SetDefault("store.maxRetries", 3)

	v.SetDefault("cache.driver", CacheDriverRedis)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", "6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttlSeconds", 60)
	v.SetDefault("cache.keyPrefix", "wallet:balance:")
	v.SetDefault("cache.operationTimeoutMs", 500)
	v.SetDefault("cache.poolSize", 20)
	v.SetDefault("cache.minIdleConns", 5)
	v.SetDefault("cache.dialTimeoutMs", 2000)
	v.SetDefault("cache.readTimeoutMs", 500)
	v.SetDefault("cache.writeTimeoutMs", 500)
	v.SetDefault("cache.invalidateOnFailure", false)

	v.SetDefault("idempotency.enabled", false)
	v.SetDefault("idempotency.ttl", "24h")
	v.SetDefault("idempotency.inFlightTtl", "30s")
	v.SetDefault("idempotency.keyPrefix", "wallet:idempotency:")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)
}

// getEnvironment determines the environment to use based on WL_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"WL_DB_HOST":         "database.host",
		"WL_DB_PORT":         "database.port",
		"WL_DB_USERNAME":     "database.username",
		"WL_DB_PASSWORD":     "database.password",
		"WL_DB_NAME":         "database.database",
		"WL_DB_SSL_MODE":     "database.sslMode",
		"WL_SERVER_HOST":     "server.host",
		"WL_SERVER_PORT":     "server.port",
		"WL_LOGGER_LEVEL":    "logger.level",
		"WL_STORE_DRIVER":    "store.driver",
		"WL_CACHE_DRIVER":    "cache.driver",
		"WL_CACHE_URL":       "cache.url",
		"WL_REDIS_URL":       "cache.url",
		"WL_CACHE_HOST":      "cache.host",
		"WL_CACHE_PORT":      "cache.port",
		"WL_CACHE_PASSWORD":  "cache.password",
		"WL_IDEMPOTENCY_TTL": "idempotency.ttl",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"WL_DB_MAX_OPEN_CONNS":          "database.maxOpenConns",
		"WL_DB_MAX_IDLE_CONNS":          "database.maxIdleConns",
		"WL_DB_LOCK_TIMEOUT_MS":         "database.lockTimeoutMs",
		"WL_STORE_OPERATION_TIMEOUT_MS": "store.operationTimeoutMs",
		"WL_CACHE_TTL_SECONDS":          "cache.ttlSeconds",
		"WL_CACHE_DB":                   "cache.db",
		"WL_CACHE_OPERATION_TIMEOUT_MS": "cache.operationTimeoutMs",
	}
	for env, key := range intOverrides {
		if value, ok := getEnvInt(env); ok && value >= 0 {
			v.Set(key, value)
		}
	}

	boolOverrides := map[string]string{
		"WL_DB_RESET_ON_START":           "database.resetOnStart",
		"WL_CACHE_INVALIDATE_ON_FAILURE": "cache.invalidateOnFailure",
		"WL_IDEMPOTENCY_ENABLED":         "idempotency.enabled",
	}
	for env, key := range boolOverrides {
		if value, err := strconv.ParseBool(os.Getenv(env)); err == nil {
			v.Set(key, value)
		}
	}
}

// getEnvInt reads an integer environment variable
func getEnvInt(name string) (int, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return 0, false
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, false
	}
	return val, true
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	// Seconds
	config.Server.ReadTimeout = config.Server.ReadTimeout * time.Second
	config.Server.WriteTimeout = config.Server.WriteTimeout * time.Second
	config.Server.IdleTimeout = config.Server.IdleTimeout * time.Second
	config.Server.ReadHeaderTimeout = config.Server.ReadHeaderTimeout * time.Second
	config.Server.ShutdownTimeout = config.Server.ShutdownTimeout * time.Second
	config.Database.RetryDelay = config.Database.RetryDelay * time.Second

	// Minutes
	config.Database.ConnMaxLifetime = config.Database.ConnMaxLifetime * time.Minute
	config.Database.ConnMaxIdleTime = config.Database.ConnMaxIdleTime * time.Minute
}
