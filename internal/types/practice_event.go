package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PracticeEvent logs activity lifecycle events (start/attempt/complete) for
// analytics. ClientEventID dedupes retried batches; duplicates are dropped,
// not errored.
type PracticeEvent struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityID         *uuid.UUID     `gorm:"type:uuid;index" json:"activity_id,omitempty"`
	ActivityExternalID string         `gorm:"column:activity_external_id;not null;index" json:"activity_external_id"`
	ClientEventID      string         `gorm:"column:client_event_id;not null;uniqueIndex" json:"client_event_id"`
	Kind               string         `gorm:"column:kind;not null;index" json:"kind"`
	IsCorrect          *bool          `gorm:"column:is_correct" json:"is_correct,omitempty"`
	Score              *float64       `gorm:"column:score" json:"score,omitempty"`
	Data               datatypes.JSON `gorm:"type:jsonb;column:data" json:"data,omitempty"`
	OccurredAt         time.Time      `gorm:"column:occurred_at;not null" json:"occurred_at"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
}

func (PracticeEvent) TableName() string { return "practice_event" }

func (e *PracticeEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
