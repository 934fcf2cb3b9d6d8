package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotDuration is fixed for every booking; end times are derived, never stored.
const SlotDuration = 45 * time.Minute

type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ResourceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_resource_starts_at" json:"resource_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	StartsAtUTC time.Time `gorm:"not null;uniqueIndex:idx_bookings_resource_starts_at" json:"starts_at_utc"`

	Resource Resource `gorm:"foreignkey:ResourceID" json:"resource,omitempty"`
	User     User     `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// The booking id is generated here, not by the database, so it stays an opaque
// random identifier that leaks neither ordering nor row count.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Booking) EndsAtUTC() time.Time {
	return b.StartsAtUTC.Add(SlotDuration)
}
