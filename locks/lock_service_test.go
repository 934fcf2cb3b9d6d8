package locks

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLockKey(t *testing.T) {
	resourceID := uuid.MustParse("8d9e8a3e-4d3f-4a5b-9c6d-7e8f9a0b1c2d")
	startsAt := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)

	got := lockKey(resourceID, startsAt)
	want := "booking_lock:8d9e8a3e-4d3f-4a5b-9c6d-7e8f9a0b1c2d:1748847600"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// The key is instant-based, so the same wall time in another zone maps to
	// the same lock.
	loc := time.FixedZone("UTC+2", 2*3600)
	if lockKey(resourceID, startsAt.In(loc)) != want {
		t.Fatalf("expected the key to be zone independent")
	}
}
