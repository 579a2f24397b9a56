package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// Wallet represents a balance ledger entry identified by an opaque client-supplied ID
type Wallet struct {
	ID             uuid.UUID // Immutable key
	balance        int64     // Smallest currency denomination, never negative (private)
	OperationCount uint64    // Count of operations applied to this wallet
	CreatedAt      time.Time // When the wallet row was created
	UpdatedAt      time.Time // When the balance last changed
}

// NewWallet creates a wallet that has not received any operation yet.
// Its implicit balance is 0.
func NewWallet(id uuid.UUID, timeProvider coreport.TimeProvider) *Wallet {
	now := timeProvider.Now()
	return &Wallet{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RestoreWallet rebuilds a wallet from its persisted representation
func RestoreWallet(id uuid.UUID, balance int64, operationCount uint64, createdAt, updatedAt time.Time) (*Wallet, error) {
	if balance < 0 {
		return nil, errs.ErrNegativeBalance
	}

	return &Wallet{
		ID:             id,
		balance:        balance,
		OperationCount: operationCount,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

// Balance returns the current balance
func (w *Wallet) Balance() int64 {
	return w.balance
}

// ApplyOperation runs the operation engine against the wallet.
// On failure the wallet is left unchanged.
func (w *Wallet) ApplyOperation(op Operation, timeProvider coreport.TimeProvider) error {
	newBalance, err := op.ApplyTo(w.balance)
	if err != nil {
		if errors.Is(err, errs.ErrInsufficientFunds) {
			return errs.NewInsufficientFundsError(w.ID.String(), op.Amount, w.balance)
		}
		return err
	}

	w.balance = newBalance
	w.OperationCount++
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// Clone returns a copy that can be handed out without sharing state
func (w *Wallet) Clone() *Wallet {
	c := *w
	return &c
}
