package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/velcric/scheduler_platform/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.AvailabilityRule{},
		&models.AvailabilityException{},
		&models.Booking{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}
	return loc
}

// testLocker serializes per key in-process, standing in for the Redis lock.
type testLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTestLocker() *testLocker {
	return &testLocker{locks: map[string]*sync.Mutex{}}
}

func (l *testLocker) AcquireSlotLock(ctx context.Context, resourceID uuid.UUID, startsAtUTC time.Time) (func(), error) {
	key := resourceID.String() + "/" + startsAtUTC.UTC().Format(time.RFC3339)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

type recordingNotifier struct {
	notified chan uuid.UUID
}

func (n *recordingNotifier) SendBookingConfirmation(booking *models.Booking, displayHost string) {
	n.notified <- booking.ID
}

func newTestService(t *testing.T) *SchedulingService {
	t.Helper()
	return &SchedulingService{
		DB:     newTestDB(t),
		Loc:    berlin(t),
		Locker: newTestLocker(),
		Now:    time.Now,
	}
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{FullName: "Test User", Email: email, Password: "x", Role: "member"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createResource(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) models.Resource {
	t.Helper()
	resource := models.Resource{OwnerID: ownerID, Name: name, IsActive: true}
	if err := db.Create(&resource).Error; err != nil {
		t.Fatalf("failed to create resource: %v", err)
	}
	return resource
}

func createRule(t *testing.T, db *gorm.DB, resourceID uuid.UUID, weekday int, start, end string) models.AvailabilityRule {
	t.Helper()
	rule := models.AvailabilityRule{
		ResourceID:     resourceID,
		Weekday:        weekday,
		StartTimeLocal: start,
		EndTimeLocal:   end,
		IsActive:       true,
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}
	return rule
}
