package model

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents the database model for wallets
type Wallet struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance        int64     `gorm:"not null;default:0;check:chk_wallets_balance_non_negative,balance >= 0"`
	OperationCount uint64    `gorm:"type:bigint;not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}
