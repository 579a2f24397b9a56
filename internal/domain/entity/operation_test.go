package entity

import (
	"errors"
	"math"
	"testing"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperationKind(t *testing.T) {
	t.Run("Recognized kinds", func(t *testing.T) {
		kind, err := ParseOperationKind("DEPOSIT")
		require.NoError(t, err)
		assert.Equal(t, OperationDeposit, kind)

		kind, err = ParseOperationKind("WITHDRAW")
		require.NoError(t, err)
		assert.Equal(t, OperationWithdraw, kind)
	})

	t.Run("Unrecognized kinds", func(t *testing.T) {
		testCases := []string{
			"deposit",
			"TRANSFER",
			"",
			"WITHDRAWAL",
			" DEPOSIT ",
			"WITHDRAW\n",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				kind, err := ParseOperationKind(tc)
				assert.ErrorIs(t, err, errs.ErrUnknownOperationKind)
				assert.Empty(t, kind)
			})
		}
	})

	t.Run("Every listed kind is valid", func(t *testing.T) {
		for _, kind := range OperationKinds() {
			assert.True(t, kind.IsValid(), kind.String())
		}
		assert.False(t, OperationKind("REFUND").IsValid())
	})
}

func TestNewOperation(t *testing.T) {
	op, err := NewOperation("DEPOSIT", 1000)
	require.NoError(t, err)
	assert.Equal(t, Operation{Kind: OperationDeposit, Amount: 1000}, op)

	_, err = NewOperation("DEPOSIT", -1)
	assert.ErrorIs(t, err, errs.ErrNegativeAmount)

	_, err = NewOperation("BONUS", 10)
	assert.ErrorIs(t, err, errs.ErrUnknownOperationKind)
}

func TestApply(t *testing.T) {
	testCases := []struct {
		name     string
		current  int64
		kind     OperationKind
		amount   int64
		expected int64
		err      error
	}{
		{"Deposit into empty wallet", 0, OperationDeposit, 1000, 1000, nil},
		{"Deposit zero", 1000, OperationDeposit, 0, 1000, nil},
		{"Withdraw part", 1000, OperationWithdraw, 300, 700, nil},
		{"Withdraw exact balance", 700, OperationWithdraw, 700, 0, nil},
		{"Withdraw zero from empty wallet", 0, OperationWithdraw, 0, 0, nil},
		{"Withdraw more than balance", 700, OperationWithdraw, 1000, 0, errs.ErrInsufficientFunds},
		{"Withdraw from empty wallet", 0, OperationWithdraw, 1, 0, errs.ErrInsufficientFunds},
		{"Unknown kind", 100, OperationKind("TRANSFER"), 10, 0, errs.ErrUnknownOperationKind},
		{"Negative amount", 100, OperationDeposit, -5, 0, errs.ErrNegativeAmount},
		{"Negative current balance", -1, OperationDeposit, 5, 0, errs.ErrNegativeBalance},
		{"Deposit overflow", math.MaxInt64 - 10, OperationDeposit, 11, 0, errs.ErrAmountOverflow},
		{"Deposit up to max", math.MaxInt64 - 10, OperationDeposit, 10, math.MaxInt64, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Apply(tc.current, tc.kind, tc.amount)

			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
			assert.GreaterOrEqual(t, result, int64(0))
		})
	}
}

func TestApplySequence(t *testing.T) {
	// 1000 deposited, 300 withdrawn, 1000 rejected, 700 withdrawn
	balance := int64(0)
	var err error

	balance, err = Apply(balance, OperationDeposit, 1000)
	require.NoError(t, err)
	balance, err = Apply(balance, OperationWithdraw, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(700), balance)

	_, err = Apply(balance, OperationWithdraw, 1000)
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

	balance, err = Apply(balance, OperationWithdraw, 700)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
