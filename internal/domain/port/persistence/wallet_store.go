package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
)

// WalletStore is the system of record for wallet balances
type WalletStore interface {
	// Upsert atomically creates the wallet with balance 0 if it does not exist,
	// applies the operation and persists the result.
	// Concurrent calls for the same wallet are serialized; calls for different
	// wallets do not block each other.
	// wasPreexisting is false only for the call that created the wallet row.
	//
	// Possible errors:
	// - ErrInsufficientFunds: The withdrawal exceeds the balance; nothing is persisted,
	//   not even the row for a previously unknown wallet
	// - ErrUnknownOperationKind / ErrNegativeAmount / ErrAmountOverflow: Rejected operation
	// - ErrStoreUnavailable: Transient failure; no partial mutation is persisted
	Upsert(ctx context.Context, walletID uuid.UUID, kind entity.OperationKind, amount int64) (wallet *entity.Wallet, wasPreexisting bool, err error)

	// Read returns the committed state of the wallet
	//
	// Possible errors:
	// - ErrWalletNotFound: No wallet exists for the ID
	// - ErrStoreUnavailable: Transient failure
	Read(ctx context.Context, walletID uuid.UUID) (*entity.Wallet, error)
}
