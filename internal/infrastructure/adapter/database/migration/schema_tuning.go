package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// SchemaTuning applies PostgreSQL-specific settings gorm tags cannot express
type SchemaTuning struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSchemaTuning creates a new SchemaTuning
func NewSchemaTuning(db *gorm.DB, logger coreport.Logger) *SchemaTuning {
	return &SchemaTuning{
		db:     db,
		logger: logger,
	}
}

// Apply runs the required constraints first, then best-effort performance tweaks
func (s *SchemaTuning) Apply(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	// AutoMigrate adds the check on create but not on an existing table
	if err := db.Exec(`
		DO $$ BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'chk_wallets_balance_non_negative'
			) THEN
				ALTER TABLE wallets ADD CONSTRAINT chk_wallets_balance_non_negative CHECK (balance >= 0);
			END IF;
		END $$;
	`).Error; err != nil {
		s.logger.Error("Failed to ensure non-negative balance constraint", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	s.applyPerformanceTweaks(db)

	s.logger.Info("Wallet schema tuning applied", nil)
	return nil
}

// applyPerformanceTweaks lowers fillfactor so balance updates stay HOT
func (s *SchemaTuning) applyPerformanceTweaks(db *gorm.DB) {
	if err := db.Exec(`ALTER TABLE wallets SET (fillfactor = 80)`).Error; err != nil {
		s.logger.Warn("Failed to set fillfactor for wallets table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := db.Exec(`ALTER TABLE wallets SET (autovacuum_vacuum_scale_factor = 0.05)`).Error; err != nil {
		s.logger.Warn("Failed to set autovacuum scale factor for wallets table", map[string]any{
			"error": err.Error(),
		})
	}
}
