package service

import (
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/gig-sync/models"
)

// RetrySchedule decides when a queue entry that already failed may be claimed
// again: an exponential delay since its last attempt, capped at Max.
type RetrySchedule struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the wait that follows the given number of attempts.
func (s RetrySchedule) Delay(attempts int) time.Duration {
	if attempts <= 0 || s.Base <= 0 {
		return 0
	}

	b := retry.NewExponential(s.Base)
	if s.Max > 0 {
		b = retry.WithCappedDuration(s.Max, b)
	}

	var d time.Duration
	for i := 0; i < attempts; i++ {
		d, _ = b.Next()
	}
	return d
}

// Due reports whether entry may be claimed at now.
func (s RetrySchedule) Due(entry models.SyncQueueEntry, now time.Time) bool {
	if entry.LastAttemptAt == nil || entry.Attempts == 0 {
		return true
	}
	return !now.Before(entry.LastAttemptAt.Add(s.Delay(entry.Attempts)))
}
