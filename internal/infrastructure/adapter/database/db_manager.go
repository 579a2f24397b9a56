package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/database/migration"
)

const (
	poolMonitorInterval    = 30 * time.Second
	slowOperationThreshold = 100 * time.Millisecond
)

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	errorMapper       *ErrorMapper
	connectionMonitor *ConnectionPoolMonitor
	metrics           *MetricsCollector
	timeProvider      coreport.TimeProvider
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
		metrics:      NewMetricsCollector(logger, timeProvider, slowOperationThreshold),
		timeProvider: timeProvider,
	}
}

// Connect establishes a database connection, retrying while the server comes up
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	m.logger.Info("Connecting to database", map[string]any{
		"host": m.config.Host,
		"port": m.config.Port,
		"name": m.config.Database,
	})

	attempts := max(m.config.RetryAttempts, 1)

	var err error
	var gormDB *gorm.DB

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt + 1,
				"of":      attempts,
				"delay":   m.config.RetryDelay.String(),
			})
			if sleepErr := m.timeProvider.Sleep(ctx, coreport.Duration(m.config.RetryDelay)); sleepErr != nil {
				return nil, fmt.Errorf("database connection canceled: %w", sleepErr)
			}
		}

		gormDB, err = m.open(ctx)
		if err == nil {
			break
		}

		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt + 1,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	m.logger.Info("Successfully connected to database", map[string]any{
		"host":           m.config.Host,
		"port":           m.config.Port,
		"name":           m.config.Database,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"lock_timeout":   m.config.LockTimeout.String(),
	})

	m.db = gormDB

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	m.connectionMonitor = NewConnectionPoolMonitor(sqlDB, m.logger)
	m.connectionMonitor.Start(poolMonitorInterval)

	return m.db, nil
}

// open opens one gorm session and verifies it with a ping
func (m *Manager) open(ctx context.Context) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(m.config.DSN()), &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel),
		NowFunc: func() time.Time {
			return m.timeProvider.Now().UTC()
		},
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return gormDB, nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks that the database answers
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database is not connected")
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	return sqlDB.PingContext(ctx)
}

// Migrate brings the schema to the current version; reset drops it first
func (m *Manager) Migrate(ctx context.Context, reset bool) error {
	migrationMgr := migration.NewMigrationManager(m.db, m.logger, m.timeProvider)

	if reset {
		if err := migrationMgr.Reset(ctx); err != nil {
			return err
		}
	}

	return migrationMgr.MigrateAll(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	stats := m.metrics.Snapshot()
	m.logger.Info("Closing database connection", map[string]any{
		"operations":           stats.Total,
		"failed_operations":    stats.Failed,
		"slow_operations":      stats.Slow,
		"cancelled_operations": stats.Cancelled,
	})

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}

	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	return sqlDB.Close()
}

// ErrorMapper returns the error mapper
func (m *Manager) ErrorMapper() *ErrorMapper {
	return m.errorMapper
}

// TxRunner returns a transaction runner bound to this connection
func (m *Manager) TxRunner() *TxRunner {
	return NewTxRunner(m.db, m.logger, m.config.LockTimeout)
}

// Retrier returns a retrier for whole-transaction retries
func (m *Manager) Retrier() *Retrier {
	config := DefaultRetryConfig()
	if m.config.MaxTxRetries > 0 {
		config.MaxRetries = m.config.MaxTxRetries
	}
	return NewRetrier(config, m.errorMapper, m.timeProvider, m.logger)
}

// MetricsCollector returns the collector shared by every store on this connection
func (m *Manager) MetricsCollector() *MetricsCollector {
	return m.metrics
}
