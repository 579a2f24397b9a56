package cache

import (
	"context"

	"github.com/google/uuid"
)

// BalanceCache is a best-effort read-through cache of wallet balances.
// Implementations never return errors: a failed lookup is reported as a miss
// and a failed write or delete is silently dropped after being logged.
type BalanceCache interface {
	// Put stores the balance for the wallet with the configured TTL
	Put(ctx context.Context, walletID uuid.UUID, balance int64)

	// Get returns the cached balance and whether it was present
	Get(ctx context.Context, walletID uuid.UUID) (int64, bool)

	// Invalidate removes any cached balance for the wallet.
	// Deleting an absent key is a no-op.
	Invalidate(ctx context.Context, walletID uuid.UUID)
}
