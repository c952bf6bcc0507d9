package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MistakeRecord is an append-only wrong-answer log for later analytics and
// spaced repetition. ClientMistakeID dedupe is advisory only; duplicate rows
// from retries are tolerated.
type MistakeRecord struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	UnitID             *uuid.UUID `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	ActivityID         *uuid.UUID `gorm:"type:uuid;index" json:"activity_id,omitempty"`
	ActivityExternalID string     `gorm:"column:activity_external_id;not null;index" json:"activity_external_id"`
	QuestionText       string     `gorm:"column:question_text;not null" json:"question_text"`
	UserAnswer         string     `gorm:"column:user_answer;not null" json:"user_answer"`
	CorrectAnswer      string     `gorm:"column:correct_answer;not null" json:"correct_answer"`
	MistakeType        string     `gorm:"column:mistake_type" json:"mistake_type,omitempty"`
	ClientMistakeID    *string    `gorm:"column:client_mistake_id;uniqueIndex" json:"client_mistake_id,omitempty"`
	OccurredAt         time.Time  `gorm:"column:occurred_at;not null" json:"occurred_at"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
}

func (MistakeRecord) TableName() string { return "mistake_record" }

func (m *MistakeRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
