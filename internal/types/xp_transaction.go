package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// XPTransaction is an append-only ledger row. DedupeKey carries the
// (source_type, source_id) idempotency key; the unique (user_id, dedupe_key)
// index is the anti-double-award invariant. Manual adjustments that bypass
// the duplicate check get a synthetic dedupe key so they always insert.
// Ledger rows are never updated or soft-deleted.
type XPTransaction struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index;index:idx_user_dedupe,unique" json:"user_id"`
	Amount     int            `gorm:"column:amount;not null" json:"amount"`
	SourceType string         `gorm:"column:source_type;not null;index" json:"source_type"`
	SourceID   string         `gorm:"column:source_id;not null" json:"source_id"`
	DedupeKey  string         `gorm:"column:dedupe_key;not null;index:idx_user_dedupe,unique" json:"-"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (XPTransaction) TableName() string { return "xp_transaction" }

func (x *XPTransaction) BeforeCreate(tx *gorm.DB) error {
	if x.ID == uuid.Nil {
		x.ID = uuid.New()
	}
	return nil
}
