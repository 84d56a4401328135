package time

import (
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with real time operations
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// AfterFunc schedules f to run once after d
func (p *RealTimeProvider) AfterFunc(d time.Duration, f func()) core.Timer {
	return time.AfterFunc(d, f)
}
