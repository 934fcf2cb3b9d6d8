package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekday is 0 = Monday .. 6 = Sunday. This is not time.Weekday numbering,
// which starts the week on Sunday.
type AvailabilityRule struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ResourceID     uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`
	Weekday        int       `gorm:"not null" json:"weekday"`
	StartTimeLocal string    `gorm:"size:5;not null" json:"start_time_local"`
	EndTimeLocal   string    `gorm:"size:5;not null" json:"end_time_local"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`

	Resource Resource `gorm:"foreignkey:ResourceID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *AvailabilityRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
