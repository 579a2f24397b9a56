package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/model"
)

// PostgresWalletStore implements WalletStore on PostgreSQL using GORM
type PostgresWalletStore struct {
	db           *gorm.DB
	txRunner     *database.TxRunner
	retrier      *database.Retrier
	errorMapper  *database.ErrorMapper
	metrics      *database.MetricsCollector
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.WalletStore = (*PostgresWalletStore)(nil)

// NewPostgresWalletStore creates a new PostgresWalletStore from a connected manager
func NewPostgresWalletStore(manager *database.Manager, timeProvider coreport.TimeProvider, logger coreport.Logger) *PostgresWalletStore {
	return &PostgresWalletStore{
		db:           manager.DB(),
		txRunner:     manager.TxRunner(),
		retrier:      manager.Retrier(),
		errorMapper:  manager.ErrorMapper(),
		metrics:      manager.MetricsCollector(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Upsert creates the wallet when missing and applies the operation under a row lock.
// A rejected operation rolls back the whole transaction, including the insert.
func (s *PostgresWalletStore) Upsert(ctx context.Context, walletID uuid.UUID, kind entity.OperationKind, amount int64) (*entity.Wallet, bool, error) {
	op, err := entity.NewOperation(string(kind), amount)
	if err != nil {
		return nil, false, err
	}

	var wallet *entity.Wallet
	var wasPreexisting bool

	err = s.retrier.Do(ctx, "wallet_upsert", func(ctx context.Context) error {
		return s.metrics.MeasureQuery(ctx, "wallet_upsert", walletID.String(), func() error {
			return s.txRunner.Run(ctx, func(tx *gorm.DB) error {
				var txErr error
				wallet, wasPreexisting, txErr = s.upsertInTx(tx, walletID, op)
				return txErr
			})
		})
	})
	if err != nil {
		return nil, false, s.errorMapper.MapError(err, "upsert", walletID.String())
	}

	s.logger.Debug("Wallet operation committed", map[string]any{
		"wallet_id":       walletID.String(),
		"operation_type":  kind.String(),
		"amount":          amount,
		"balance":         wallet.Balance(),
		"was_preexisting": wasPreexisting,
	})

	return wallet, wasPreexisting, nil
}

func (s *PostgresWalletStore) upsertInTx(tx *gorm.DB, walletID uuid.UUID, op entity.Operation) (*entity.Wallet, bool, error) {
	now := s.timeProvider.Now()

	insert := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Wallet{
		ID:        walletID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if insert.Error != nil {
		return nil, false, fmt.Errorf("insert wallet: %w", insert.Error)
	}
	wasPreexisting := insert.RowsAffected == 0

	var row model.Wallet
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", walletID).
		Take(&row).Error; err != nil {
		return nil, false, fmt.Errorf("lock wallet: %w", err)
	}

	wallet, err := modelToEntity(&row)
	if err != nil {
		return nil, false, err
	}

	if err := wallet.ApplyOperation(op, s.timeProvider); err != nil {
		return nil, false, err
	}

	update := tx.Model(&model.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":         wallet.Balance(),
			"operation_count": wallet.OperationCount,
			"updated_at":      wallet.UpdatedAt,
		})
	if update.Error != nil {
		return nil, false, fmt.Errorf("update wallet: %w", update.Error)
	}
	if update.RowsAffected != 1 {
		return nil, false, fmt.Errorf("update wallet: %d rows affected", update.RowsAffected)
	}

	return wallet, wasPreexisting, nil
}

// Read returns the committed wallet state without locking
func (s *PostgresWalletStore) Read(ctx context.Context, walletID uuid.UUID) (*entity.Wallet, error) {
	var row model.Wallet

	err := s.retrier.Do(ctx, "wallet_read", func(ctx context.Context) error {
		return s.metrics.MeasureQuery(ctx, "wallet_read", walletID.String(), func() error {
			return s.db.WithContext(ctx).Where("id = ?", walletID).Take(&row).Error
		})
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Failed to read wallet", map[string]any{
				"wallet_id": walletID.String(),
				"error":     err.Error(),
			})
		}
		return nil, s.errorMapper.MapError(err, "read", walletID.String())
	}

	return modelToEntity(&row)
}

// modelToEntity converts a wallet model to an entity
func modelToEntity(row *model.Wallet) (*entity.Wallet, error) {
	wallet, err := entity.RestoreWallet(row.ID, row.Balance, row.OperationCount, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("stored wallet %s: %w", row.ID, err)
	}
	return wallet, nil
}
