package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/velcric/scheduler_platform/models"
	"gorm.io/gorm"
)

// CreateBooking reserves one slot for one user. Safe under arbitrary
// concurrency across processes: a distributed lock on (resource, instant)
// collapses the race window for a fast rejection, and the storage-level unique
// index is the ground truth two racers can never both pass. Every failure
// leaves no partial state.
func (s *SchedulingService) CreateBooking(ctx context.Context, userID, resourceID uuid.UUID, startsAtUTC time.Time, displayHost string) (*models.Booking, error) {
	// Whole seconds, UTC, so the uniqueness key compares identically across
	// drivers and across the lock key.
	startsAtUTC = startsAtUTC.UTC().Truncate(time.Second)

	dayLocal := DateOf(startsAtUTC.In(s.Loc))
	count, err := s.CountUserBookingsOnLocalDay(userID, dayLocal)
	if err != nil {
		return nil, err
	}
	if count >= MaxDailyBookings {
		return nil, ErrQuotaExceeded
	}

	booking := &models.Booking{
		ResourceID:  resourceID,
		UserID:      userID,
		StartsAtUTC: startsAtUTC,
	}

	err = func() error {
		release, err := s.Locker.AcquireSlotLock(ctx, resourceID, startsAtUTC)
		if err != nil {
			return ErrLockTimeout
		}
		defer release()

		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(booking).Error
		})
	}()
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}

	// The reservation is durable; confirmation delivery is fire-and-forget
	// and runs outside the lock.
	if s.Notifier != nil {
		go s.Notifier.SendBookingConfirmation(booking, displayHost)
	}

	return booking, nil
}

// CancelBooking removes a booking. Only the booking's own user or the owner
// of its resource may cancel; anyone else gets ErrNotAuthorized. Hard delete,
// no audit trail.
func (s *SchedulingService) CancelBooking(bookingID, actingUserID uuid.UUID) error {
	var booking models.Booking
	err := s.DB.Preload("Resource").First(&booking, "id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if booking.UserID != actingUserID && booking.Resource.OwnerID != actingUserID {
		return ErrNotAuthorized
	}

	return s.DB.Delete(&models.Booking{}, "id = ?", bookingID).Error
}

// GetBookingForUser loads a booking for its user or the resource owner, for
// example to re-download the calendar file. Not-authorized reads report
// not-found so existence never leaks.
func (s *SchedulingService) GetBookingForUser(bookingID, actingUserID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Resource").Preload("User").First(&booking, "id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.UserID != actingUserID && booking.Resource.OwnerID != actingUserID {
		return nil, ErrBookingNotFound
	}
	return &booking, nil
}
