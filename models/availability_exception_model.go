package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// At most one exception per resource per local date. A closed exception blanks
// the whole day; an open one with both override times replaces the day's rule
// hours, and with neither the rule hours apply unchanged.
type AvailabilityException struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ResourceID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_exceptions_resource_date" json:"resource_id"`
	DateLocal      string    `gorm:"size:10;not null;uniqueIndex:idx_exceptions_resource_date" json:"date_local"`
	IsClosed       bool      `gorm:"not null;default:true" json:"is_closed"`
	StartTimeLocal *string   `gorm:"size:5" json:"start_time_local"`
	EndTimeLocal   *string   `gorm:"size:5" json:"end_time_local"`

	Resource Resource `gorm:"foreignkey:ResourceID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *AvailabilityException) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
