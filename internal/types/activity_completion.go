package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityCompletion marks one activity as done for one user. The unique
// (user_id, activity_id) index is what makes retried completion events
// idempotent: the marker either inserts once or conflicts.
type ActivityCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_activity,unique" json:"user_id"`
	ActivityID  uuid.UUID `gorm:"type:uuid;not null;index:idx_user_activity,unique" json:"activity_id"`
	Activity    *Activity `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	UnitID      uuid.UUID `gorm:"type:uuid;not null;index" json:"unit_id"`
	CompletedAt time.Time `gorm:"column:completed_at;not null" json:"completed_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (ActivityCompletion) TableName() string { return "activity_completion" }

func (c *ActivityCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
