package services

import "errors"

var (
	// ErrQuotaExceeded: the user already holds the daily maximum of bookings
	// on the slot's local day.
	ErrQuotaExceeded = errors.New("daily booking limit reached (max 5/day)")

	// ErrSlotAlreadyBooked: the (resource, starts_at_utc) uniqueness constraint
	// rejected the insert. This is the authoritative conflict signal.
	ErrSlotAlreadyBooked = errors.New("this slot is already booked")

	// ErrLockTimeout: the slot lock could not be acquired within its bounded
	// wait. Transient contention; callers may retry.
	ErrLockTimeout = errors.New("could not acquire slot lock, try again")

	// ErrNotAuthorized: the acting user is neither the booking's user nor the
	// resource owner. Handlers report it as not-found to avoid leaking that
	// the booking exists.
	ErrNotAuthorized = errors.New("not allowed")

	// ErrInvalidSlot: the requested instant is in the past or not in the
	// currently computed available set.
	ErrInvalidSlot = errors.New("slot is not available")

	ErrResourceNotFound = errors.New("resource not found")
	ErrBookingNotFound  = errors.New("booking not found")
)
