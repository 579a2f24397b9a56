package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wallet-ledger/mocks/port/core"
)

func TestNewWallet(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Once()

	id := uuid.New()
	wallet := NewWallet(id, mockTime)

	assert.Equal(t, id, wallet.ID)
	assert.Equal(t, int64(0), wallet.Balance())
	assert.Equal(t, uint64(0), wallet.OperationCount)
	assert.Equal(t, fixedTime, wallet.CreatedAt)
	assert.Equal(t, fixedTime, wallet.UpdatedAt)
}

func TestRestoreWallet(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("Valid balance", func(t *testing.T) {
		wallet, err := RestoreWallet(uuid.New(), 2500, 3, created, updated)

		require.NoError(t, err)
		assert.Equal(t, int64(2500), wallet.Balance())
		assert.Equal(t, uint64(3), wallet.OperationCount)
		assert.Equal(t, updated, wallet.UpdatedAt)
	})

	t.Run("Negative balance is rejected", func(t *testing.T) {
		wallet, err := RestoreWallet(uuid.New(), -1, 0, created, updated)

		assert.Equal(t, errs.ErrNegativeBalance, err)
		assert.Nil(t, wallet)
	})
}

func TestWalletApplyOperation(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	appliedAt := createdAt.Add(time.Minute)

	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(createdAt).Once()
	mockTime.EXPECT().Now().Return(appliedAt).Maybe()

	wallet := NewWallet(uuid.MustParse("9b2f6a3e-5d1c-4c55-8f0a-0e7f1d1b2c3d"), mockTime)

	t.Run("Deposit", func(t *testing.T) {
		err := wallet.ApplyOperation(Operation{Kind: OperationDeposit, Amount: 1000}, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), wallet.Balance())
		assert.Equal(t, uint64(1), wallet.OperationCount)
		assert.Equal(t, appliedAt, wallet.UpdatedAt)
	})

	t.Run("Insufficient funds leaves wallet unchanged", func(t *testing.T) {
		err := wallet.ApplyOperation(Operation{Kind: OperationWithdraw, Amount: 5000}, mockTime)

		require.Error(t, err)
		assert.True(t, errs.IsInsufficientFundsError(err))

		var detailed *errs.InsufficientFundsError
		require.True(t, errors.As(err, &detailed))
		assert.Equal(t, "9b2f6a3e-5d1c-4c55-8f0a-0e7f1d1b2c3d", detailed.WalletID)
		assert.Equal(t, int64(5000), detailed.Amount)
		assert.Equal(t, int64(1000), detailed.CurrentBalance)

		assert.Equal(t, int64(1000), wallet.Balance())
		assert.Equal(t, uint64(1), wallet.OperationCount)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		err := wallet.ApplyOperation(Operation{Kind: "TRANSFER", Amount: 1}, mockTime)

		assert.ErrorIs(t, err, errs.ErrUnknownOperationKind)
		assert.Equal(t, int64(1000), wallet.Balance())
	})

	t.Run("Clone does not share state", func(t *testing.T) {
		clone := wallet.Clone()
		require.NoError(t, clone.ApplyOperation(Operation{Kind: OperationWithdraw, Amount: 400}, mockTime))

		assert.Equal(t, int64(600), clone.Balance())
		assert.Equal(t, int64(1000), wallet.Balance())
	})
}
