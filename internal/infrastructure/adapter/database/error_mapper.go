package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainErr "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// ErrorType represents the class of a database error
type ErrorType string

const (
	NotFoundError   ErrorType = "not_found"
	TransientError  ErrorType = "transient"
	LockError       ErrorType = "lock"
	ConnectionError ErrorType = "connection"
	ConstraintError ErrorType = "constraint"
	CanceledError   ErrorType = "canceled"
	UnknownError    ErrorType = "unknown"
)

// PostgreSQL SQLSTATE codes the wallet store cares about
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateQueryCanceled        = "57014"
	sqlStateAdminShutdown        = "57P01"
	sqlStateCannotConnectNow     = "57P03"
	sqlStateTooManyConnections   = "53300"
	sqlStateCheckViolation       = "23514"
	sqlStateNotNullViolation     = "23502"
	sqlStateUniqueViolation      = "23505"
)

// ErrorMapper classifies database errors and maps them to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify returns the class of a database error.
// SQLSTATE codes are used when the driver provides them; message matching is the fallback.
func (m *ErrorMapper) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TransientError
	}
	if errors.Is(err, context.Canceled) {
		return CanceledError
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlStateSerializationFailure,
			pgErr.Code == sqlStateDeadlockDetected,
			pgErr.Code == sqlStateLockNotAvailable:
			return LockError
		case pgErr.Code == sqlStateQueryCanceled:
			return TransientError
		case pgErr.Code == sqlStateAdminShutdown,
			pgErr.Code == sqlStateCannotConnectNow,
			pgErr.Code == sqlStateTooManyConnections,
			strings.HasPrefix(pgErr.Code, "08"):
			return ConnectionError
		case pgErr.Code == sqlStateCheckViolation,
			pgErr.Code == sqlStateNotNullViolation,
			pgErr.Code == sqlStateUniqueViolation:
			return ConstraintError
		}
		return UnknownError
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize access") ||
		strings.Contains(errMsg, "lock timeout"):
		return LockError
	case strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "unexpected eof") ||
		strings.Contains(errMsg, "no connection"):
		return ConnectionError
	case strings.Contains(errMsg, "timeout"):
		return TransientError
	case strings.Contains(errMsg, "violates check constraint"):
		return ConstraintError
	}

	return UnknownError
}

// IsTransient reports whether retrying the whole transaction may succeed
func (m *ErrorMapper) IsTransient(err error) bool {
	switch m.Classify(err) {
	case TransientError, LockError, ConnectionError:
		return true
	}
	return false
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation, walletID string) error {
	if err == nil {
		return nil
	}

	// Domain outcomes raised inside a transaction pass through untouched
	if domainErr.IsRejectedOperation(err) ||
		errors.Is(err, domainErr.ErrWalletNotFound) ||
		errors.Is(err, domainErr.ErrStoreUnavailable) {
		return err
	}

	switch m.Classify(err) {
	case NotFoundError:
		return domainErr.ErrWalletNotFound
	case ConstraintError:
		// balance >= 0 is also enforced by the schema; reaching it means the
		// engine was bypassed, so report the invariant rather than a store outage
		var pgErr *pgconn.PgError
		if (errors.As(err, &pgErr) && pgErr.Code == sqlStateCheckViolation) ||
			strings.Contains(strings.ToLower(err.Error()), "check constraint") {
			return domainErr.ErrNegativeBalance
		}
		return domainErr.NewStoreError(operation, walletID, err)
	default:
		return domainErr.NewStoreError(operation, walletID, err)
	}
}
