package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for testing with a database
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to the database named by TEST_DB_* variables and
// skips the test when TEST_DB_HOST is not set.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres integration test")
	}

	timeProvider := timeprovider.NewRealTimeProvider()

	config := &Config{
		Host:            host,
		Port:            getEnvIntOrDefault("TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("TEST_DB_DATABASE", "wallet_ledger_test"),
		SSLMode:         getEnvOrDefault("TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		LockTimeout:     2 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1, // fail fast in tests
		RetryDelay:      time.Second,
		MaxTxRetries:    5,
	}

	manager := NewManager(config, logger, timeProvider)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	m := &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
	t.Cleanup(func() { m.Close(t) })

	return m
}

// Close closes the test database connection
func (m *TestDBManager) Close(t *testing.T) {
	t.Helper()

	if err := m.Manager.Close(); err != nil {
		t.Logf("Warning: Failed to close test database connection: %v", err)
	}
}

// SetupTestDB drops and recreates the wallet schema
func (m *TestDBManager) SetupTestDB(t *testing.T) {
	t.Helper()

	if err := m.Manager.Migrate(context.Background(), true); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
}

// TruncateWallets removes every wallet row
func (m *TestDBManager) TruncateWallets(t *testing.T) {
	t.Helper()

	if err := m.Manager.DB().Exec("TRUNCATE TABLE wallets").Error; err != nil {
		t.Fatalf("Failed to truncate wallets: %v", err)
	}
}

// CreateTestWallet inserts a wallet with the given balance
func (m *TestDBManager) CreateTestWallet(t *testing.T, id uuid.UUID, balance int64) {
	t.Helper()

	now := m.TimeProvider.Now()
	wallet := model.Wallet{
		ID:        id,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.Manager.DB().Create(&wallet).Error; err != nil {
		t.Fatalf("Failed to create test wallet: %v", err)
	}
}

// Helper functions to get environment variables or defaults
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
