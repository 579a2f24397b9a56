package entity

import (
	"fmt"
	"math"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
)

// OperationKind represents the kind of balance mutation requested for a wallet
type OperationKind string

// Operation kinds
const (
	OperationDeposit  OperationKind = "DEPOSIT"
	OperationWithdraw OperationKind = "WITHDRAW"
)

// OperationKinds returns every recognized operation kind
func OperationKinds() []OperationKind {
	return []OperationKind{OperationDeposit, OperationWithdraw}
}

// IsValid reports whether the kind is one of the recognized operation kinds
func (k OperationKind) IsValid() bool {
	switch k {
	case OperationDeposit, OperationWithdraw:
		return true
	}
	return false
}

// String returns the wire name of the kind
func (k OperationKind) String() string {
	return string(k)
}

// ParseOperationKind converts a wire value into an OperationKind.
// Matching is exact: "deposit" and " DEPOSIT " are not recognized kinds.
func ParseOperationKind(value string) (OperationKind, error) {
	kind := OperationKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownOperationKind, value)
	}
	return kind, nil
}

// Operation is an ephemeral request to mutate a wallet balance.
// It is consumed immediately and never persisted on its own.
type Operation struct {
	Kind   OperationKind
	Amount int64
}

// NewOperation validates the kind and amount of an incoming operation
func NewOperation(kind string, amount int64) (Operation, error) {
	parsed, err := ParseOperationKind(kind)
	if err != nil {
		return Operation{}, err
	}
	if amount < 0 {
		return Operation{}, errs.ErrNegativeAmount
	}
	return Operation{Kind: parsed, Amount: amount}, nil
}

// ApplyTo applies the operation to the given balance
func (o Operation) ApplyTo(currentBalance int64) (int64, error) {
	return Apply(currentBalance, o.Kind, o.Amount)
}

// Apply computes the balance that results from applying kind/amount to currentBalance.
// It has no side effects. The result is never negative:
// - DEPOSIT returns currentBalance + amount
// - WITHDRAW returns currentBalance - amount, or ErrInsufficientFunds when amount > currentBalance
func Apply(currentBalance int64, kind OperationKind, amount int64) (int64, error) {
	if currentBalance < 0 {
		return 0, errs.ErrNegativeBalance
	}
	if amount < 0 {
		return 0, errs.ErrNegativeAmount
	}

	switch kind {
	case OperationDeposit:
		if amount > math.MaxInt64-currentBalance {
			return 0, errs.ErrAmountOverflow
		}
		return currentBalance + amount, nil
	case OperationWithdraw:
		if amount > currentBalance {
			return 0, fmt.Errorf("%w: requested %d, available %d", errs.ErrInsufficientFunds, amount, currentBalance)
		}
		return currentBalance - amount, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownOperationKind, string(kind))
	}
}
