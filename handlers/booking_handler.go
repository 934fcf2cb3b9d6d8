package handlers

import (
	"errors"
	"time"

	"github.com/velcric/scheduler_platform/database"
	"github.com/velcric/scheduler_platform/models"
	"github.com/velcric/scheduler_platform/notifications"
	"github.com/velcric/scheduler_platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID  string    `json:"resource_id" validate:"required,uuid"`
	StartsAtUTC time.Time `json:"starts_at_utc" validate:"required"`
}

func CreateBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	resourceID, _ := uuid.Parse(req.ResourceID)

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ? AND is_active = ?", resourceID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	// Reject instants that are not in the currently computed available set
	// before the coordinator is ever invoked. The widest supported window is
	// checked so no honest client is turned away.
	startsAt := req.StartsAtUTC.UTC().Truncate(time.Second)
	if !startsAt.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidSlot.Error()})
	}
	slots, err := services.Scheduler.ListAvailableSlots(resource.ID, maxWindowDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute availability"})
	}
	available := false
	for _, slot := range slots {
		if slot.StartsUTC.Equal(startsAt) {
			available = true
			break
		}
	}
	if !available {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidSlot.Error()})
	}

	booking, err := services.Scheduler.CreateBooking(c.Context(), userID, resource.ID, startsAt, c.Hostname())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuotaExceeded):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrSlotAlreadyBooked):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrLockTimeout):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var bookings []models.Booking
	err := database.DB.
		Preload("Resource").
		Where("user_id = ?", userID).
		Order("starts_at_utc desc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list bookings"})
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

// GetManagerBookings lists bookings on resources the caller owns.
func GetManagerBookings(c *fiber.Ctx) error {
	ownerID := currentUserID(c)

	var bookings []models.Booking
	err := database.DB.
		Preload("Resource").
		Preload("User").
		Joins("JOIN resources ON resources.id = bookings.resource_id").
		Where("resources.owner_id = ?", ownerID).
		Order("starts_at_utc desc").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list bookings"})
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

func CancelBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	err = services.Scheduler.CancelBooking(bookingID, userID)
	if err != nil {
		// Not-authorized deliberately looks identical to not-found.
		if errors.Is(err, services.ErrBookingNotFound) || errors.Is(err, services.ErrNotAuthorized) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled"})
}

// DownloadBookingICS re-serves the calendar file for an existing booking.
func DownloadBookingICS(c *fiber.Ctx) error {
	userID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := services.Scheduler.GetBookingForUser(bookingID, userID)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking"})
	}

	icsBytes, err := notifications.BuildICS(booking, c.Hostname())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build calendar file"})
	}

	c.Set("Content-Type", "text/calendar; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="appointment.ics"`)
	return c.Send(icsBytes)
}
