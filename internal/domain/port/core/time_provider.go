package core

import (
	"time"
)

// Timer is a handle to a scheduled one-shot task
type Timer interface {
	// Stop cancels the timer if it has not fired yet.
	// Returns true if the call stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// TimeProvider abstracts time operations for the domain.
// Besides clock reads it owns one-shot timer scheduling, so the deferred
// pending re-check can be driven by a fake clock in tests.
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time

	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration

	// AfterFunc schedules f to run once after d and returns a handle to cancel it
	AfterFunc(d time.Duration, f func()) Timer
}
