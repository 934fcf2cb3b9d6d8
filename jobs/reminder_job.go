package jobs

import (
	"fmt"
	"log"
	"time"

	config "github.com/velcric/scheduler_platform/configs"
	"github.com/velcric/scheduler_platform/database"
	"github.com/velcric/scheduler_platform/models"
	"github.com/velcric/scheduler_platform/notifications"
)

// SendBookingReminders runs every 5 minutes; the 60–65 minute window means
// each booking falls into exactly one run.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking

	err := database.DB.
		Preload("User").
		Preload("Resource").
		Where("starts_at_utc BETWEEN ? AND ?", lowerBound, upperBound).
		Find(&upcomingBookings).Error

	if err != nil {
		log.Printf("Error checking for upcoming bookings: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	loc := config.Location()
	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		emailSubject := "Reminder: Your Appointment Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Appointment Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your appointment for <b>%s</b> starts in one hour at %s.</p>",
			booking.Resource.Name,
			booking.StartsAtUTC.In(loc).Format(time.Kitchen),
		)

		go notifications.SendEmail(booking.User.FullName, booking.User.Email, emailSubject, emailBody)
	}
}
