package types

import (
	"time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID   string         `gorm:"column:external_id;not null;uniqueIndex" json:"external_id"`
	UnitID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"unit_id"`
	Unit         *Unit          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	Type         string         `gorm:"column:type;not null" json:"type"`
	ComponentKey string         `gorm:"column:component_key" json:"component_key,omitempty"`
	OrderIndex   int            `gorm:"column:order_index;not null" json:"order_index"`
	Title        string         `gorm:"column:title" json:"title,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string { return "activity" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
