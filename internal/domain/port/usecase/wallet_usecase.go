package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
)

// OperationResult represents the outcome of a successfully applied operation
type OperationResult struct {
	WalletID       uuid.UUID `json:"walletId"`
	Balance        int64     `json:"balance"`
	WasPreexisting bool      `json:"-"`
}

// BalanceResult represents the standardized balance response
type BalanceResult struct {
	WalletID uuid.UUID `json:"walletId"`
	Balance  int64     `json:"balance"`
	Cached   bool      `json:"-"`
}

// WalletUseCase defines the business operations exposed over a wallet
type WalletUseCase interface {
	// ApplyOperation applies a deposit or withdrawal, creating the wallet on first use.
	// This is the core method used by the POST /api/v1/wallets/{walletId}/operation endpoint.
	// On success the fresh balance is written to the cache.
	ApplyOperation(ctx context.Context, walletID uuid.UUID, kind entity.OperationKind, amount int64) (*OperationResult, error)

	// GetBalance returns the wallet balance, consulting the cache first.
	// This is the main method used by the GET /api/v1/wallets/{walletId} endpoint.
	GetBalance(ctx context.Context, walletID uuid.UUID) (*BalanceResult, error)
}
