package notifications

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/velcric/scheduler_platform/models"
)

// BuildICS renders a booking as a single-event iCalendar file: opaque uid,
// start/end 45 minutes apart, summary, creation/modification stamps, and
// busy (OPAQUE) transparency. The booking must have its Resource loaded.
func BuildICS(booking *models.Booking, displayHost string) ([]byte, error) {
	if booking.Resource.Name == "" {
		return nil, fmt.Errorf("booking %s has no resource loaded", booking.ID)
	}

	now := time.Now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Scheduler Platform//EN")

	event := cal.AddEvent(fmt.Sprintf("%s@scheduler-platform", booking.ID))
	event.SetSummary(fmt.Sprintf("Appointment: %s", booking.Resource.Name))
	event.SetDescription(fmt.Sprintf("Resource: %s", booking.Resource.Name))
	event.SetStartAt(booking.StartsAtUTC.UTC())
	event.SetEndAt(booking.EndsAtUTC().UTC())
	event.SetDtStampTime(now)
	event.SetCreatedTime(now)
	event.SetModifiedAt(now)
	event.SetTimeTransparency(ics.TransparencyOpaque)
	event.SetProperty(ics.ComponentPropertyCategories, "Scheduler Platform")
	if displayHost != "" {
		event.SetURL(fmt.Sprintf("https://%s/booking/", displayHost))
	}

	return []byte(cal.Serialize()), nil
}
