package error

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInsufficientFunds.Error() != "insufficient funds" {
		t.Errorf("ErrInsufficientFunds has unexpected message: %s", ErrInsufficientFunds.Error())
	}
	if ErrWalletNotFound.Error() != "wallet not found" {
		t.Errorf("ErrWalletNotFound has unexpected message: %s", ErrWalletNotFound.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientFunds", ErrInsufficientFunds, 4001},
		{"NegativeAmount", ErrNegativeAmount, 4002},
		{"InvalidWalletID", ErrInvalidWalletID, 4003},
		{"UnknownOperationKind", ErrUnknownOperationKind, 4004},
		{"InvalidRequest", ErrInvalidRequest, 4005},
		{"AmountOverflow", ErrAmountOverflow, 4006},
		{"WalletNotFound", ErrWalletNotFound, 4040},
		{"DuplicateRequest", ErrDuplicateRequest, 4090},
		{"StoreUnavailable", ErrStoreUnavailable, 5030},
		{"DeadlineExceeded", context.DeadlineExceeded, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidWalletID), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("9b2f6a3e-5d1c-4c55-8f0a-0e7f1d1b2c3d", 1000, 70)

	expected := "insufficient funds in wallet 9b2f6a3e-5d1c-4c55-8f0a-0e7f1d1b2c3d: requested 1000, available 70"
	if err.Error() != expected {
		t.Errorf("InsufficientFundsError.Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("errors.Is(err, ErrInsufficientFunds) = false, want true")
	}
	if !IsInsufficientFundsError(fmt.Errorf("apply: %w", err)) {
		t.Errorf("IsInsufficientFundsError on wrapped error = false, want true")
	}

	var detailed *InsufficientFundsError
	if !errors.As(err, &detailed) {
		t.Fatalf("errors.As(err, *InsufficientFundsError) = false, want true")
	}
	fields := detailed.LogFields()
	if fields["error_code"] != CodeInsufficientFunds {
		t.Errorf("LogFields()[error_code] = %v, want %d", fields["error_code"], CodeInsufficientFunds)
	}
	if fields["current_balance"] != int64(70) {
		t.Errorf("LogFields()[current_balance] = %v, want 70", fields["current_balance"])
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := NewStoreError("upsert", "wallet-1", cause)

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("errors.Is(err, ErrStoreUnavailable) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	if !IsRetryable(err) {
		t.Errorf("IsRetryable(StoreError) = false, want true")
	}

	expected := "store upsert failed for wallet wallet-1: connection reset by peer"
	if err.Error() != expected {
		t.Errorf("StoreError.Error() = %s, want %s", err.Error(), expected)
	}
}

func TestIsRejectedOperation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"InsufficientFunds", NewInsufficientFundsError("w", 10, 5), true},
		{"UnknownOperationKind", fmt.Errorf("%w: TRANSFER", ErrUnknownOperationKind), true},
		{"NegativeAmount", ErrNegativeAmount, true},
		{"AmountOverflow", ErrAmountOverflow, true},
		{"StoreUnavailable", ErrStoreUnavailable, false},
		{"NotFound", ErrWalletNotFound, false},
		{"Nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRejectedOperation(tc.err); got != tc.expected {
				t.Errorf("IsRejectedOperation(%v) = %v, want %v", tc.err, got, tc.expected)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(ErrInsufficientFunds) {
		t.Errorf("IsRetryable(ErrInsufficientFunds) = true, want false")
	}
	if !IsRetryable(fmt.Errorf("read: %w", context.DeadlineExceeded)) {
		t.Errorf("IsRetryable(wrapped deadline) = false, want true")
	}
	if IsRetryable(nil) {
		t.Errorf("IsRetryable(nil) = true, want false")
	}
}

func TestErrorFields(t *testing.T) {
	err := fmt.Errorf("upsert: %w", NewInsufficientFundsError("wallet-1", 30, 10))

	fields := ErrorFields(err)
	if fields["error_code"] != CodeInsufficientFunds {
		t.Errorf("ErrorFields()[error_code] = %v, want %d", fields["error_code"], CodeInsufficientFunds)
	}
	if fields["wallet_id"] != "wallet-1" {
		t.Errorf("ErrorFields()[wallet_id] = %v, want wallet-1", fields["wallet_id"])
	}

	plain := ErrorFields(ErrWalletNotFound)
	if plain["error_code"] != CodeWalletNotFound {
		t.Errorf("ErrorFields()[error_code] = %v, want %d", plain["error_code"], CodeWalletNotFound)
	}
	if _, ok := plain["wallet_id"]; ok {
		t.Errorf("ErrorFields() on sentinel should not carry wallet_id")
	}

	if len(ErrorFields(nil)) != 0 {
		t.Errorf("ErrorFields(nil) should be empty")
	}
}
