package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
)

func newPostgresStore(t *testing.T) (*PostgresWalletStore, *database.TestDBManager) {
	t.Helper()

	testDB := database.NewTestDBManager(t, logger.NewNoopLogger())
	testDB.SetupTestDB(t)

	return NewPostgresWalletStore(testDB.Manager, testDB.TimeProvider, testDB.Logger), testDB
}

func TestPostgresWalletStoreUpsert(t *testing.T) {
	store, testDB := newPostgresStore(t)
	ctx := context.Background()

	t.Run("Creates then updates", func(t *testing.T) {
		id := uuid.New()

		wallet, existed, err := store.Upsert(ctx, id, entity.OperationDeposit, 100)
		require.NoError(t, err)
		assert.False(t, existed)
		assert.Equal(t, int64(100), wallet.Balance())

		wallet, existed, err = store.Upsert(ctx, id, entity.OperationWithdraw, 60)
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Equal(t, int64(40), wallet.Balance())
		assert.Equal(t, uint64(2), wallet.OperationCount)

		read, err := store.Read(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(40), read.Balance())
	})

	t.Run("Rejected withdrawal on unknown wallet rolls back the insert", func(t *testing.T) {
		id := uuid.New()

		_, _, err := store.Upsert(ctx, id, entity.OperationWithdraw, 10)
		assert.True(t, errs.IsInsufficientFundsError(err))

		var count int64
		require.NoError(t, testDB.Manager.DB().Model(&model.Wallet{}).Where("id = ?", id).Count(&count).Error)
		assert.Zero(t, count)

		_, err = store.Read(ctx, id)
		assert.ErrorIs(t, err, errs.ErrWalletNotFound)
	})

	t.Run("Rejected withdrawal keeps the balance", func(t *testing.T) {
		id := uuid.New()
		testDB.CreateTestWallet(t, id, 25)

		_, _, err := store.Upsert(ctx, id, entity.OperationWithdraw, 26)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		read, err := store.Read(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(25), read.Balance())
	})

	t.Run("Database rejects negative balances", func(t *testing.T) {
		err := testDB.Manager.DB().Exec("INSERT INTO wallets (id, balance, operation_count, created_at, updated_at) VALUES (?, -1, 0, now(), now())", uuid.New()).Error
		assert.Error(t, err)
	})
}

func TestPostgresWalletStoreConcurrency(t *testing.T) {
	store, _ := newPostgresStore(t)
	ctx := context.Background()
	id := uuid.New()
	const workers = 50

	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, existed, err := store.Upsert(ctx, id, entity.OperationDeposit, 2)
			assert.NoError(t, err)
			if !existed {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	wallet, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2*workers), wallet.Balance())
	assert.Equal(t, int32(1), created.Load())
}
