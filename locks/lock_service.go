package locks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	goredislib "github.com/redis/go-redis/v9"

	config "github.com/velcric/scheduler_platform/configs"
)

const (
	// lockExpiry auto-releases a lock held by a crashed process.
	lockExpiry = 10 * time.Second
	// acquireWait bounds how long a caller blocks on a contended slot.
	acquireWait = 5 * time.Second

	retryDelay = 100 * time.Millisecond
)

// RedisLocker serializes booking attempts per (resource, instant) across all
// server instances. It only narrows the race window; the bookings table's
// unique index remains the ground truth.
type RedisLocker struct {
	rs *redsync.Redsync
}

var Locker *RedisLocker

func InitLockService() {
	redisURL := config.Config("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://127.0.0.1:6379/0"
	}

	opts, err := goredislib.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("🔥 Invalid REDIS_URL: %v", err)
	}

	client := goredislib.NewClient(opts)
	Locker = &RedisLocker{rs: redsync.New(goredis.NewPool(client))}
	log.Println("✅ Slot lock service initialized")
}

func lockKey(resourceID uuid.UUID, startsAtUTC time.Time) string {
	return fmt.Sprintf("booking_lock:%s:%d", resourceID, startsAtUTC.Unix())
}

// AcquireSlotLock blocks up to acquireWait for the slot's mutex. The returned
// release is safe on every exit path; an expired lock just logs, since by then
// the insert has already been decided by the unique index.
func (l *RedisLocker) AcquireSlotLock(ctx context.Context, resourceID uuid.UUID, startsAtUTC time.Time) (func(), error) {
	mutex := l.rs.NewMutex(
		lockKey(resourceID, startsAtUTC),
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(int(acquireWait/retryDelay)),
		redsync.WithRetryDelay(retryDelay),
	)

	waitCtx, cancel := context.WithTimeout(ctx, acquireWait)
	defer cancel()

	if err := mutex.LockContext(waitCtx); err != nil {
		return nil, fmt.Errorf("slot lock not acquired within %s: %w", acquireWait, err)
	}

	release := func() {
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			log.Printf("Failed to release slot lock %s: %v", mutex.Name(), err)
		}
	}
	return release, nil
}
