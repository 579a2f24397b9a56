package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// TxRunner runs a function inside one database transaction
type TxRunner struct {
	db          *gorm.DB
	logger      coreport.Logger
	lockTimeout time.Duration
}

// NewTxRunner creates a new TxRunner
func NewTxRunner(db *gorm.DB, logger coreport.Logger, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{
		db:          db,
		logger:      logger,
		lockTimeout: lockTimeout,
	}
}

// Run begins a transaction, runs fn and commits. Any error from fn, or a panic,
// rolls everything back so the transaction leaves no trace.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			r.rollback(tx)
			panic(p)
		}
		if err != nil {
			r.rollback(tx)
		}
	}()

	if r.lockTimeout > 0 {
		// SET LOCAL does not accept bind parameters
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if err = tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit().Error; err != nil {
		r.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rollback rolls back tx, tolerating transactions that were already closed
func (r *TxRunner) rollback(tx *gorm.DB) {
	err := tx.Rollback().Error
	if err == nil {
		return
	}

	if strings.Contains(err.Error(), "already been committed or rolled back") {
		r.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return
	}

	r.logger.Error("Failed to rollback transaction", map[string]any{
		"error": err.Error(),
	})
}
