package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/time"
)

func TestMigrationManager(t *testing.T) {
	testDB := database.NewTestDBManager(t, logger.NewNoopLogger())
	testDB.SetupTestDB(t)

	ctx := context.Background()
	db := testDB.Manager.DB()
	manager := migration.NewMigrationManager(db, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider())

	t.Run("Schema is at the current version", func(t *testing.T) {
		version, err := manager.GetCurrentVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, migration.CurrentSchemaVersion, version)
	})

	t.Run("Migrating again is a no-op", func(t *testing.T) {
		require.NoError(t, manager.MigrateAll(ctx))

		var count int64
		require.NoError(t, db.Model(&model.MigrationVersion{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Negative balance is rejected by the check constraint", func(t *testing.T) {
		now := time.Now()
		err := db.Create(&model.Wallet{
			ID:        uuid.New(),
			Balance:   -1,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error

		require.Error(t, err)
		assert.Equal(t, database.ConstraintError, testDB.Manager.ErrorMapper().Classify(err))
	})

	t.Run("Reset drops the schema", func(t *testing.T) {
		require.NoError(t, manager.Reset(ctx))
		assert.False(t, db.Migrator().HasTable(&model.Wallet{}))

		require.NoError(t, manager.MigrateAll(ctx))
		assert.True(t, db.Migrator().HasTable(&model.Wallet{}))
	})
}
