package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/usecase"
)

// ApplyOperation applies a deposit or withdrawal to the wallet.
// The flow is:
// 1. Reject malformed operations before touching the store
// 2. Upsert through the store, which serializes operations per wallet
// 3. Write the committed balance to the cache (best effort)
func (u *WalletUseCase) ApplyOperation(
	ctx context.Context,
	walletID uuid.UUID,
	kind entity.OperationKind,
	amount int64,
) (*usecase.OperationResult, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownOperationKind, string(kind))
	}
	if amount < 0 {
		return nil, errs.ErrNegativeAmount
	}

	startTime := u.timeProvider.Now()

	storeCtx, cancel := u.withStoreTimeout(ctx)
	wallet, wasPreexisting, err := u.store.Upsert(storeCtx, walletID, kind, amount)
	cancel()

	if err != nil {
		err = storeFailure("upsert", walletID, err)
		fields := errs.ErrorFields(err)
		fields["wallet_id"] = walletID.String()
		fields["operation_type"] = kind.String()
		fields["amount"] = amount

		if errs.IsRejectedOperation(err) {
			u.logger.Info("Wallet operation rejected", fields)
			if u.opts.InvalidateOnFailure {
				u.cache.Invalidate(context.WithoutCancel(ctx), walletID)
			}
			return nil, err
		}

		u.logger.Error("Wallet operation failed", fields)
		return nil, err
	}

	// The commit already happened, so a cancelled request must not skip the cache write
	u.cache.Put(context.WithoutCancel(ctx), walletID, wallet.Balance())

	u.logger.Info("Wallet operation applied", map[string]any{
		"wallet_id":       walletID.String(),
		"operation_type":  kind.String(),
		"amount":          amount,
		"balance":         wallet.Balance(),
		"created":         !wasPreexisting,
		"processing_time": u.timeProvider.Since(startTime).Std().String(),
	})

	return &usecase.OperationResult{
		WalletID:       walletID,
		Balance:        wallet.Balance(),
		WasPreexisting: wasPreexisting,
	}, nil
}
