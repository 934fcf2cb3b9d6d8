package services

import (
	"fmt"
	"time"

	"github.com/velcric/scheduler_platform/models"
)

// Clock is a wall-clock time of day, independent of any date or zone. Rule and
// exception hours are stored as "HH:MM" strings and parsed into Clocks.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// LocalDate is a calendar date with no time component, always interpreted in
// the configured zone. Exceptions are keyed by its "YYYY-MM-DD" form.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return LocalDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday returns the Monday-based weekday (0 = Monday .. 6 = Sunday) used by
// AvailabilityRule.
func (d LocalDate) Weekday() int {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return (int(t.Weekday()) + 6) % 7
}

func (d LocalDate) AddDays(n int) LocalDate {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return DateOf(t)
}

// DateRange lists the days of the window [start, start+days).
func DateRange(start LocalDate, days int) []LocalDate {
	out := make([]LocalDate, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, start.AddDays(i))
	}
	return out
}

// EnumerateSlots steps through [open, close) in SlotDuration increments and
// returns every start whose full slot fits: a slot ending exactly at close is
// included, one ending after it is not. An inverted interval yields nothing.
func EnumerateSlots(open, close Clock) []Clock {
	step := int(models.SlotDuration / time.Minute)
	var out []Clock
	for m := open.minutes(); m+step <= close.minutes(); m += step {
		out = append(out, Clock{Hour: m / 60, Minute: m % 60})
	}
	return out
}

// MaterializeLocal resolves a wall-clock time on a date to an instant in loc.
// Times that do not exist locally (the spring-forward DST gap) are reported
// with ok=false; such slots are never offered.
func MaterializeLocal(day LocalDate, c Clock, loc *time.Location) (time.Time, bool) {
	t := time.Date(day.Year, day.Month, day.Day, c.Hour, c.Minute, 0, 0, loc)
	if t.Hour() != c.Hour || t.Minute() != c.Minute {
		return time.Time{}, false
	}
	return t, true
}

// MidnightLocal is the start of the day in loc. Used for the quota window;
// unlike slot times it tolerates a DST gap by taking whatever instant the
// normalized date resolves to.
func MidnightLocal(day LocalDate, loc *time.Location) time.Time {
	return time.Date(day.Year, day.Month, day.Day, 0, 0, 0, 0, loc)
}
