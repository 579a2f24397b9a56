package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	cacheport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
	walletUseCase "github.com/amirhossein-jamali/wallet-ledger/internal/domain/usecase/wallet"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/config"
)

const healthCheckTimeout = 2 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	warnProductionSettings(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction(), cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStartup()

	checks := map[string]handler.HealthCheck{}

	store, closeStore, err := buildStore(startupCtx, cfg, tp, appLogger, checks)
	if err != nil {
		appLogger.Error("Failed to initialize wallet store", map[string]any{
			"driver": cfg.Store.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer closeStore()

	balanceCache, redisClient, err := buildCache(startupCtx, cfg, tp, appLogger, checks)
	if err != nil {
		appLogger.Error("Failed to initialize balance cache", map[string]any{
			"driver": cfg.Cache.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	walletUseCaseImpl := walletUseCase.NewWalletUseCase(store, balanceCache, tp, appLogger, walletUseCase.Options{
		StoreTimeout:        coreport.Duration(cfg.Store.OperationTimeout()),
		InvalidateOnFailure: cfg.Cache.InvalidateOnFailure,
	})

	var idempotency gin.HandlerFunc
	if cfg.Idempotency.Enabled {
		idempotency = middleware.Idempotency(redisClient, middleware.IdempotencyOptions{
			TTL:         cfg.Idempotency.TTL,
			InFlightTTL: cfg.Idempotency.InFlightTTL,
			KeyPrefix:   cfg.Idempotency.KeyPrefix,
		}, appLogger)
	}

	walletHandler := handler.NewWalletHandler(walletUseCaseImpl, appLogger)
	healthHandler := handler.NewHealthHandler(checks, healthCheckTimeout, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, walletHandler, healthHandler, idempotency, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":         server.Addr,
			"env":          cfg.Environment,
			"store_driver": cfg.Store.Driver,
			"cache_driver": cfg.Cache.Driver,
			"idempotency":  cfg.Idempotency.Enabled,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// In-flight operations finish (and commit) before the store closes
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// buildStore connects the configured wallet store and registers its health check
func buildStore(
	ctx context.Context,
	cfg *config.Config,
	tp coreport.TimeProvider,
	appLogger coreport.Logger,
	checks map[string]handler.HealthCheck,
) (persistence.WalletStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		appLogger.Warn("Using in-memory wallet store; balances are lost on restart", nil)
		checks["store"] = handler.HealthCheck{Probe: func(context.Context) error { return nil }, Critical: true}
		return repository.NewMemoryWalletStore(tp, appLogger), func() {}, nil

	case config.StoreDriverPostgres:
		dbManager := database.NewManager(database.NewConfigFromAppConfig(cfg), appLogger, tp)
		if _, err := dbManager.Connect(ctx); err != nil {
			return nil, nil, err
		}

		closeDB := func() {
			if err := dbManager.Close(); err != nil {
				appLogger.Error("Failed to close database", map[string]any{"error": err.Error()})
			}
		}

		reset := cfg.AllowsReset()
		if reset {
			appLogger.Warn("Resetting wallet schema on start", map[string]any{"env": cfg.Environment})
		}
		if err := dbManager.Migrate(ctx, reset); err != nil {
			closeDB()
			return nil, nil, err
		}

		checks["store"] = handler.HealthCheck{Probe: dbManager.Ping, Critical: true}
		return repository.NewPostgresWalletStore(dbManager, tp, appLogger), closeDB, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// buildCache creates the configured balance cache. The redis client is
// returned as well because idempotency shares it.
func buildCache(
	ctx context.Context,
	cfg *config.Config,
	tp coreport.TimeProvider,
	appLogger coreport.Logger,
	checks map[string]handler.HealthCheck,
) (cacheport.BalanceCache, *redis.Client, error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverNone:
		return cache.NewNoopBalanceCache(), nil, nil

	case config.CacheDriverMemory:
		return cache.NewMemoryBalanceCache(cfg.Cache.TTL(), tp), nil, nil

	case config.CacheDriverRedis:
		// Idempotency cannot work without Redis; the balance cache can
		var client *redis.Client
		var err error
		if cfg.Idempotency.Enabled {
			client, err = cache.NewRedisClient(ctx, cfg.Cache)
		} else {
			client, err = cache.NewOptionalRedisClient(ctx, cfg.Cache, appLogger)
		}
		if err != nil {
			return nil, nil, err
		}

		checks["cache"] = handler.HealthCheck{Probe: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}}

		return cache.NewRedisBalanceCache(client, cache.RedisBalanceCacheOptions{
			TTL:              cfg.Cache.TTL(),
			KeyPrefix:        cfg.Cache.KeyPrefix,
			OperationTimeout: cfg.Cache.OperationTimeout(),
		}, appLogger), client, nil

	default:
		return nil, nil, fmt.Errorf("unsupported cache driver: %s", cfg.Cache.Driver)
	}
}

// warnProductionSettings reports risky production settings without failing start
func warnProductionSettings(cfg *config.Config) {
	if !cfg.IsProduction() {
		return
	}

	var warnings []string

	sslMode := strings.ToLower(cfg.Database.SSLMode)
	if cfg.Store.Driver == config.StoreDriverPostgres && sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
		warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
	}

	if cfg.Store.Driver == config.StoreDriverMemory {
		warnings = append(warnings, "store.driver is memory; balances will not survive a restart")
	}

	if cfg.Server.ReadTimeout < 5*time.Second {
		warnings = append(warnings, "server.readTimeout is too low for production")
	}

	if cfg.Server.WriteTimeout < 5*time.Second {
		warnings = append(warnings, "server.writeTimeout is too low for production")
	}

	if len(warnings) > 0 {
		log.Printf("Warning: potential issues in production configuration: %v", warnings)
	}
}
