package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wallet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
)

// walletSlot serializes access to one wallet. sem is a one-token lock that
// can be abandoned when the caller's context is done.
type walletSlot struct {
	sem     chan struct{}
	wallet  *entity.Wallet // nil until the first accepted operation commits
	removed bool           // set under sem when an empty slot leaves the map
}

// MemoryWalletStore implements WalletStore in process memory.
// Operations on distinct wallets never block each other.
type MemoryWalletStore struct {
	slots        sync.Map // map[uuid.UUID]*walletSlot
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.WalletStore = (*MemoryWalletStore)(nil)

// NewMemoryWalletStore creates a new MemoryWalletStore
func NewMemoryWalletStore(timeProvider coreport.TimeProvider, logger coreport.Logger) *MemoryWalletStore {
	return &MemoryWalletStore{
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (s *MemoryWalletStore) slot(walletID uuid.UUID) *walletSlot {
	if existing, ok := s.slots.Load(walletID); ok {
		return existing.(*walletSlot)
	}
	slotIface, _ := s.slots.LoadOrStore(walletID, &walletSlot{sem: make(chan struct{}, 1)})
	return slotIface.(*walletSlot)
}

// lockLiveSlot locks the slot currently mapped to walletID. A slot removed
// while this caller waited on it is skipped in favor of a fresh one.
func (s *MemoryWalletStore) lockLiveSlot(ctx context.Context, walletID uuid.UUID) (*walletSlot, error) {
	for {
		slot := s.slot(walletID)
		if err := s.lock(ctx, slot, "upsert", walletID); err != nil {
			return nil, err
		}
		if !slot.removed {
			return slot, nil
		}
		<-slot.sem
	}
}

// lock acquires the wallet's token or gives up when ctx is done
func (s *MemoryWalletStore) lock(ctx context.Context, slot *walletSlot, operation string, walletID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errs.NewStoreError(operation, walletID.String(), err)
	}

	select {
	case slot.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.logger.Warn("Context done while waiting for wallet lock", map[string]any{
			"wallet_id": walletID.String(),
			"operation": operation,
			"error":     ctx.Err().Error(),
		})
		return errs.NewStoreError(operation, walletID.String(), ctx.Err())
	}
}

// Upsert creates the wallet when missing and applies the operation atomically
func (s *MemoryWalletStore) Upsert(ctx context.Context, walletID uuid.UUID, kind entity.OperationKind, amount int64) (*entity.Wallet, bool, error) {
	op, err := entity.NewOperation(string(kind), amount)
	if err != nil {
		return nil, false, err
	}

	slot, err := s.lockLiveSlot(ctx, walletID)
	if err != nil {
		return nil, false, err
	}
	defer func() { <-slot.sem }()

	wasPreexisting := slot.wallet != nil

	// Work on a copy so a rejected operation leaves the stored state untouched
	var candidate *entity.Wallet
	if wasPreexisting {
		candidate = slot.wallet.Clone()
	} else {
		candidate = entity.NewWallet(walletID, s.timeProvider)
	}

	if err := candidate.ApplyOperation(op, s.timeProvider); err != nil {
		if !wasPreexisting {
			// Rejected traffic against unknown ids must not pin memory
			slot.removed = true
			s.slots.CompareAndDelete(walletID, slot)
		}
		return nil, false, err
	}

	slot.wallet = candidate

	return candidate.Clone(), wasPreexisting, nil
}

// Read returns a copy of the committed wallet state
func (s *MemoryWalletStore) Read(ctx context.Context, walletID uuid.UUID) (*entity.Wallet, error) {
	var slot *walletSlot
	for {
		slotIface, ok := s.slots.Load(walletID)
		if !ok {
			return nil, errs.ErrWalletNotFound
		}
		slot = slotIface.(*walletSlot)

		if err := s.lock(ctx, slot, "read", walletID); err != nil {
			return nil, err
		}
		if !slot.removed {
			break
		}
		<-slot.sem
	}
	defer func() { <-slot.sem }()

	if slot.wallet == nil {
		return nil, errs.ErrWalletNotFound
	}

	return slot.wallet.Clone(), nil
}

// Len returns the number of wallets with committed state
func (s *MemoryWalletStore) Len() int {
	count := 0
	s.slots.Range(func(_, slotIface any) bool {
		slot := slotIface.(*walletSlot)
		slot.sem <- struct{}{}
		if slot.wallet != nil {
			count++
		}
		<-slot.sem
		return true
	})
	return count
}
