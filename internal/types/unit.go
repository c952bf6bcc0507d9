package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit is an externally authored, ordered grouping of activities. Rows are
// synced from the content catalog at startup; learner state never lives here.
type Unit struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID         string         `gorm:"column:external_id;not null;uniqueIndex" json:"external_id"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	DisplayOrder       int            `gorm:"column:display_order;not null;index" json:"display_order"`
	TotalActivityCount int            `gorm:"column:total_activity_count;not null;default:0" json:"total_activity_count"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Unit) TableName() string { return "unit" }

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
