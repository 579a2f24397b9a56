package error

import (
	"context"
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds    = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidWalletID      = 4003
	CodeUnknownOperationKind = 4004
	CodeInvalidRequest       = 4005
	CodeAmountOverflow       = 4006
	CodeDuplicateRequest     = 4090
	CodeWalletNotFound       = 4040

	// 5xxx - Server errors
	CodeInternalServer   = 5000
	CodeStoreUnavailable = 5030
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a withdrawal would drive the balance negative
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownOperationKind is returned when the operation kind is neither DEPOSIT nor WITHDRAW
	ErrUnknownOperationKind = errors.New("unknown operation kind")

	// ErrNegativeAmount is returned when the operation amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrNegativeBalance is returned when a balance below zero reaches the engine
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrAmountOverflow is returned when a deposit would overflow the balance
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidWalletID is returned when the wallet ID is not a well-formed UUID
	ErrInvalidWalletID = errors.New("wallet ID is not valid")

	// ErrWalletNotFound is returned when no wallet row exists for the ID
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDuplicateRequest is returned when an idempotency key is already being processed
	ErrDuplicateRequest = errors.New("duplicate request currently processing")

	// ErrStoreUnavailable is returned when the wallet store fails transiently.
	// Callers may retry; no partial mutation is ever left behind.
	ErrStoreUnavailable = errors.New("wallet store unavailable")

	// ErrCacheUnavailable never leaves the cache adapters; it is downgraded to a miss
	ErrCacheUnavailable = errors.New("balance cache unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidWalletID):
		return CodeInvalidWalletID
	case errors.Is(err, ErrUnknownOperationKind):
		return CodeUnknownOperationKind
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrDuplicateRequest):
		return CodeDuplicateRequest
	case errors.Is(err, ErrWalletNotFound):
		return CodeWalletNotFound
	case IsRetryable(err):
		return CodeStoreUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a rejected withdrawal
type InsufficientFundsError struct {
	WalletID       string
	Amount         int64
	CurrentBalance int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in wallet %s: requested %d, available %d",
		e.WalletID, e.Amount, e.CurrentBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"wallet_id":       e.WalletID,
		"amount":          e.Amount,
		"current_balance": e.CurrentBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(walletID string, amount, currentBalance int64) error {
	return &InsufficientFundsError{
		WalletID:       walletID,
		Amount:         amount,
		CurrentBalance: currentBalance,
	}
}

// StoreError wraps a persistence failure with the operation that produced it
type StoreError struct {
	Operation string
	WalletID  string
	Err       error
}

// Error implements the error interface for StoreError
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for wallet %s: %v", e.Operation, e.WalletID, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports every StoreError as ErrStoreUnavailable
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *StoreError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "store_unavailable",
		"operation":  e.Operation,
		"wallet_id":  e.WalletID,
		"error":      e.Err.Error(),
		"error_code": CodeStoreUnavailable,
	}
}

// NewStoreError creates a retryable store error
func NewStoreError(operation, walletID string, err error) error {
	return &StoreError{
		Operation: operation,
		WalletID:  walletID,
		Err:       err,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsWalletNotFoundError checks if the error is a wallet not found error
func IsWalletNotFoundError(err error) bool {
	return errors.Is(err, ErrWalletNotFound)
}

// IsRejectedOperation reports errors that reject an operation without touching state
func IsRejectedOperation(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrUnknownOperationKind) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrNegativeBalance) ||
		errors.Is(err, ErrAmountOverflow)
}

// IsRetryable checks if the client may safely retry the request.
// Timeouts are classified as retryable rather than surfaced as wrong balances.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ErrorFields returns structured logging fields for err, merged with the
// details of any typed error in its chain
func ErrorFields(err error) map[string]any {
	if err == nil {
		return map[string]any{}
	}

	fields := map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}

	var detailed interface{ LogFields() map[string]any }
	if errors.As(err, &detailed) {
		for k, v := range detailed.LogFields() {
			fields[k] = v
		}
	}
	return fields
}
