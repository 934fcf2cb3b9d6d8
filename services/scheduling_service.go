package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/velcric/scheduler_platform/models"
	"gorm.io/gorm"
)

// MaxDailyBookings is the per-user cap across all resources for one local day.
const MaxDailyBookings = 5

// SlotLocker is the distributed mutual-exclusion primitive wrapped around the
// booking insert. Acquire blocks up to its bounded wait; the returned release
// must be safe to call exactly once on every exit path. The lock is a latency
// optimization only: correctness comes from the storage uniqueness constraint.
type SlotLocker interface {
	AcquireSlotLock(ctx context.Context, resourceID uuid.UUID, startsAtUTC time.Time) (release func(), err error)
}

// BookingNotifier produces and delivers the confirmation artifact for a
// committed booking. Best-effort: implementations log failures and never
// return them.
type BookingNotifier interface {
	SendBookingConfirmation(booking *models.Booking, displayHost string)
}

// Slot is a candidate reservable instant. Derived fresh on every availability
// query, never persisted.
type Slot struct {
	StartsLocal time.Time `json:"starts_local"`
	StartsUTC   time.Time `json:"starts_utc"`
}

// SchedulingService carries the configured timezone and collaborators
// explicitly so the core has no ambient state and tests can substitute all of
// them, including the clock.
type SchedulingService struct {
	DB       *gorm.DB
	Loc      *time.Location
	Locker   SlotLocker
	Notifier BookingNotifier
	Now      func() time.Time
}

var Scheduler *SchedulingService

func InitScheduler(db *gorm.DB, loc *time.Location, locker SlotLocker, notifier BookingNotifier) {
	Scheduler = &SchedulingService{
		DB:       db,
		Loc:      loc,
		Locker:   locker,
		Notifier: notifier,
		Now:      time.Now,
	}
	log.Printf("✅ Scheduler initialized (timezone: %s)", loc)
}

func (s *SchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListAvailableSlots computes the bookable slots for a resource over
// [today, today+windowDays) in the configured zone. Read-only; the result is a
// point-in-time view and carries no reservation guarantee. Overlapping rules
// produce repeated entries on purpose, matching how owners entered them.
func (s *SchedulingService) ListAvailableSlots(resourceID uuid.UUID, windowDays int) ([]Slot, error) {
	var rules []models.AvailabilityRule
	err := s.DB.
		Where("resource_id = ? AND is_active = ?", resourceID, true).
		Order("weekday, start_time_local").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	rulesByWeekday := map[int][]models.AvailabilityRule{}
	for _, rule := range rules {
		rulesByWeekday[rule.Weekday] = append(rulesByWeekday[rule.Weekday], rule)
	}

	var exceptions []models.AvailabilityException
	if err := s.DB.Where("resource_id = ?", resourceID).Find(&exceptions).Error; err != nil {
		return nil, err
	}
	exceptionByDate := map[string]*models.AvailabilityException{}
	for i := range exceptions {
		exceptionByDate[exceptions[i].DateLocal] = &exceptions[i]
	}

	now := s.now().In(s.Loc)
	today := DateOf(now)

	var candidates []Slot
	for _, day := range DateRange(today, windowDays) {
		exception := exceptionByDate[day.String()]
		if exception != nil && exception.IsClosed {
			continue
		}

		dayRules := rulesByWeekday[day.Weekday()]
		if len(dayRules) == 0 {
			continue
		}

		for _, rule := range dayRules {
			startStr := rule.StartTimeLocal
			endStr := rule.EndTimeLocal

			// An open exception with both override times replaces every
			// rule's hours on that date.
			if exception != nil && !exception.IsClosed &&
				exception.StartTimeLocal != nil && exception.EndTimeLocal != nil {
				startStr = *exception.StartTimeLocal
				endStr = *exception.EndTimeLocal
			}

			open, err := ParseClock(startStr)
			if err != nil {
				log.Printf("Skipping rule %s: %v", rule.ID, err)
				continue
			}
			close, err := ParseClock(endStr)
			if err != nil {
				log.Printf("Skipping rule %s: %v", rule.ID, err)
				continue
			}

			for _, c := range EnumerateSlots(open, close) {
				startsLocal, ok := MaterializeLocal(day, c, s.Loc)
				if !ok {
					continue
				}
				if !startsLocal.After(now) {
					continue
				}
				candidates = append(candidates, Slot{
					StartsLocal: startsLocal,
					StartsUTC:   startsLocal.UTC(),
				})
			}
		}
	}

	if len(candidates) == 0 {
		return []Slot{}, nil
	}

	var bookedTimes []time.Time
	err = s.DB.Model(&models.Booking{}).
		Where("resource_id = ? AND starts_at_utc >= ?", resourceID, s.now().Add(-24*time.Hour)).
		Pluck("starts_at_utc", &bookedTimes).Error
	if err != nil {
		return nil, err
	}
	booked := map[int64]bool{}
	for _, t := range bookedTimes {
		booked[t.Unix()] = true
	}

	out := make([]Slot, 0, len(candidates))
	for _, slot := range candidates {
		if booked[slot.StartsUTC.Unix()] {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

// CountUserBookingsOnLocalDay counts the user's bookings whose UTC instant
// falls inside the local day [00:00, next day 00:00) in the configured zone.
func (s *SchedulingService) CountUserBookingsOnLocalDay(userID uuid.UUID, day LocalDate) (int64, error) {
	startUTC := MidnightLocal(day, s.Loc).UTC()
	endUTC := MidnightLocal(day.AddDays(1), s.Loc).UTC()

	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("user_id = ? AND starts_at_utc >= ? AND starts_at_utc < ?", userID, startUTC, endUTC).
		Count(&count).Error
	return count, err
}
