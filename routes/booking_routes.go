package routes

import (
	"github.com/velcric/scheduler_platform/handlers"
	"github.com/velcric/scheduler_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Post("", handlers.CreateBooking)
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/:bookingId/calendar.ics", handlers.DownloadBookingICS)
	booking.Delete("/:bookingId", handlers.CancelBooking)

	manager := api.Group("/owner/bookings", middleware.Protected())
	manager.Get("", handlers.GetManagerBookings)
}
