package models

import (
	"ledgerline/internal/ledger"
	"ledgerline/internal/uuid"

	"gorm.io/gorm"
)

// NetWorthSnapshot is a point-in-time record of a user's net worth.
// This is immutable time-series data: no Base embed, no soft deletes.
type NetWorthSnapshot struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string       `gorm:"type:uuid;not null;uniqueIndex:idx_snapshots_user_date,priority:1" json:"user_id"`
	RecordedAt  ledger.Date  `gorm:"not null;uniqueIndex:idx_snapshots_user_date,priority:2" json:"recorded_at"`
	NetWorth    ledger.Cents `gorm:"type:bigint;not null" json:"net_worth"`
	Assets      ledger.Cents `gorm:"type:bigint;not null" json:"assets"`
	Liabilities ledger.Cents `gorm:"type:bigint;not null" json:"liabilities"`
}

// BeforeCreate assigns a UUIDv7 id to new snapshots.
func (s *NetWorthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
