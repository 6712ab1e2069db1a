// Package models holds the GORM models persisted by the server and their
// conversions to the ledger types.
package models

import (
	"fmt"
	"time"

	"ledgerline/internal/uuid"

	"gorm.io/gorm"
)

// Base is embedded by every model. Rows are soft-deleted.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUIDv7 to new rows and normalizes ids set by the
// caller.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
		return nil
	}
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", b.ID, err)
	}
	b.ID = id
	return nil
}
