package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	cacheport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/usecase"
)

// Options tunes how the use case drives the store and the cache
type Options struct {
	// StoreTimeout bounds every store call; zero disables the bound
	StoreTimeout coreport.Duration
	// InvalidateOnFailure drops the cached balance after a rejected write
	InvalidateOnFailure bool
}

// WalletUseCase orchestrates the wallet store and the balance cache.
// The store is always authoritative; the cache is only written after
// a successful store call.
type WalletUseCase struct {
	store        persistence.WalletStore
	cache        cacheport.BalanceCache
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	opts         Options
}

var _ usecase.WalletUseCase = (*WalletUseCase)(nil)

// NewWalletUseCase creates a new WalletUseCase
func NewWalletUseCase(
	store persistence.WalletStore,
	cache cacheport.BalanceCache,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	opts Options,
) *WalletUseCase {
	return &WalletUseCase{
		store:        store,
		cache:        cache,
		timeProvider: timeProvider,
		logger:       logger,
		opts:         opts,
	}
}

// withStoreTimeout derives the context used for a single store call
func (u *WalletUseCase) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.opts.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return u.timeProvider.WithTimeout(ctx, u.opts.StoreTimeout)
}

// storeFailure classifies an error coming out of the store.
// Domain outcomes pass through untouched, anything else becomes a retryable StoreError.
func storeFailure(operation string, walletID uuid.UUID, err error) error {
	if errs.IsRejectedOperation(err) ||
		errors.Is(err, errs.ErrWalletNotFound) ||
		errors.Is(err, errs.ErrStoreUnavailable) {
		return err
	}
	return errs.NewStoreError(operation, walletID.String(), err)
}
