package services

import (
	"testing"
	"time"
)

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("failed to parse clock %q: %v", s, err)
	}
	return c
}

func TestParseClock_Invalid(t *testing.T) {
	for _, s := range []string{"", "9:00:00", "25:00", "09-00", "junk"} {
		if _, err := ParseClock(s); err == nil {
			t.Errorf("expected error for %q, got nil", s)
		}
	}
}

func TestEnumerateSlots_ExactFit(t *testing.T) {
	// 09:00-10:30 holds exactly two 45-minute slots; a third starting at
	// 10:30 would end at 11:15 and is excluded.
	slots := EnumerateSlots(mustClock(t, "09:00"), mustClock(t, "10:30"))
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d (%v)", len(slots), slots)
	}
	if slots[0].String() != "09:00" || slots[1].String() != "09:45" {
		t.Fatalf("expected [09:00 09:45], got %v", slots)
	}
}

func TestEnumerateSlots_SingleSlotWindow(t *testing.T) {
	slots := EnumerateSlots(mustClock(t, "08:00"), mustClock(t, "08:45"))
	if len(slots) != 1 || slots[0].String() != "08:00" {
		t.Fatalf("expected exactly [08:00], got %v", slots)
	}
}

func TestEnumerateSlots_IntervalTooShort(t *testing.T) {
	if slots := EnumerateSlots(mustClock(t, "09:00"), mustClock(t, "09:30")); len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestEnumerateSlots_InvertedInterval(t *testing.T) {
	if slots := EnumerateSlots(mustClock(t, "17:00"), mustClock(t, "09:00")); len(slots) != 0 {
		t.Fatalf("expected no slots for inverted interval, got %v", slots)
	}
}

func TestLocalDate_Weekday(t *testing.T) {
	// 2025-06-02 is a Monday.
	day, err := ParseLocalDate("2025-06-02")
	if err != nil {
		t.Fatalf("failed to parse date: %v", err)
	}
	if day.Weekday() != 0 {
		t.Fatalf("expected weekday 0 (Monday), got %d", day.Weekday())
	}
	if day.AddDays(6).Weekday() != 6 {
		t.Fatalf("expected weekday 6 (Sunday), got %d", day.AddDays(6).Weekday())
	}
}

func TestDateRange(t *testing.T) {
	start, _ := ParseLocalDate("2025-01-30")
	days := DateRange(start, 3)
	want := []string{"2025-01-30", "2025-01-31", "2025-02-01"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i, d := range days {
		if d.String() != want[i] {
			t.Errorf("day %d: expected %s, got %s", i, want[i], d)
		}
	}
}

func TestMaterializeLocal(t *testing.T) {
	loc := berlin(t)

	day, _ := ParseLocalDate("2025-06-02")
	got, ok := MaterializeLocal(day, mustClock(t, "09:00"), loc)
	if !ok {
		t.Fatalf("expected 09:00 to materialize")
	}
	want := time.Date(2025, 6, 2, 9, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !got.UTC().Equal(time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 07:00 UTC, got %v", got.UTC())
	}
}

func TestMaterializeLocal_DSTGap(t *testing.T) {
	loc := berlin(t)

	// Berlin springs forward on 2025-03-30: 02:00-03:00 does not exist.
	day, _ := ParseLocalDate("2025-03-30")
	if _, ok := MaterializeLocal(day, mustClock(t, "02:30"), loc); ok {
		t.Fatalf("expected 02:30 in the DST gap to be non-materializable")
	}
	if _, ok := MaterializeLocal(day, mustClock(t, "03:00"), loc); !ok {
		t.Fatalf("expected 03:00 after the gap to materialize")
	}
}
