package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnitProgress is the one-per-(user, unit) completion summary. The completed
// counter only ever moves up and is bounded by the unit's activity total.
type UnitProgress struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_unit,unique" json:"user_id"`
	UnitID                 uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_unit,unique" json:"unit_id"`
	Unit                   *Unit          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	CompletedActivityCount int            `gorm:"column:completed_activity_count;not null;default:0" json:"completed_activity_count"`
	TotalActivityCount     int            `gorm:"column:total_activity_count;not null;default:0" json:"total_activity_count"`
	LastAccessedAt         *time.Time     `gorm:"column:last_accessed_at" json:"last_accessed_at,omitempty"`
	CreatedAt              time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UnitProgress) TableName() string { return "unit_progress" }

func (p *UnitProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *UnitProgress) IsCompleted() bool {
	if p == nil {
		return false
	}
	return p.TotalActivityCount > 0 && p.CompletedActivityCount >= p.TotalActivityCount
}
