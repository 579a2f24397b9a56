package wallet

import (
	"context"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/usecase"
)

// GetBalance returns the wallet balance using the read-through cache.
// A hit never touches the store; a miss reads the store and repopulates the cache.
func (u *WalletUseCase) GetBalance(ctx context.Context, walletID uuid.UUID) (*usecase.BalanceResult, error) {
	if balance, ok := u.cache.Get(ctx, walletID); ok {
		u.logger.Debug("Wallet balance served from cache", map[string]any{
			"wallet_id": walletID.String(),
			"balance":   balance,
		})
		return &usecase.BalanceResult{WalletID: walletID, Balance: balance, Cached: true}, nil
	}

	storeCtx, cancel := u.withStoreTimeout(ctx)
	wallet, err := u.store.Read(storeCtx, walletID)
	cancel()

	if err != nil {
		err = storeFailure("read", walletID, err)
		if errs.IsWalletNotFoundError(err) {
			u.logger.Debug("Wallet not found", map[string]any{"wallet_id": walletID.String()})
			return nil, err
		}

		fields := errs.ErrorFields(err)
		fields["wallet_id"] = walletID.String()
		u.logger.Error("Failed to read wallet balance", fields)
		return nil, err
	}

	u.cache.Put(context.WithoutCancel(ctx), walletID, wallet.Balance())

	u.logger.Debug("Wallet balance retrieved", map[string]any{
		"wallet_id": walletID.String(),
		"balance":   wallet.Balance(),
	})

	return &usecase.BalanceResult{WalletID: walletID, Balance: wallet.Balance()}, nil
}
