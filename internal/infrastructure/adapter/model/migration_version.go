package model

import "time"

// MigrationVersion is one applied schema version of the wallets schema.
// Rows are append-only; the latest applied_at wins.
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;index"`
	AppliedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	Details   string    `gorm:"type:text;null"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
