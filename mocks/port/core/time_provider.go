package core

import (
	"sync"
	"time"

	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock implementation of the core.TimeProvider port
type MockTimeProvider struct {
	mock.Mock
}

// Now returns the configured current time
func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Since returns the configured elapsed duration
func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}

// AfterFunc returns the configured timer handle
func (m *MockTimeProvider) AfterFunc(d time.Duration, f func()) coreport.Timer {
	args := m.Called(d, f)
	return args.Get(0).(coreport.Timer)
}

// MockTimer is a mock implementation of the core.Timer handle
type MockTimer struct {
	mock.Mock
}

// Stop cancels the timer
func (m *MockTimer) Stop() bool {
	args := m.Called()
	return args.Bool(0)
}

// FakeTimeProvider is a deterministic clock with manually fired timers, for
// tests that drive the deferred re-check without real sleeps.
type FakeTimeProvider struct {
	mu      sync.Mutex
	current time.Time
	timers  []*FakeTimer
}

// NewFakeTimeProvider creates a fake clock starting at the given time
func NewFakeTimeProvider(start time.Time) *FakeTimeProvider {
	return &FakeTimeProvider{current: start}
}

// Now returns the fake current time
func (f *FakeTimeProvider) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Since returns elapsed fake time
func (f *FakeTimeProvider) Since(t time.Time) time.Duration {
	return f.Now().Sub(t)
}

// AfterFunc registers a timer that fires only when the test advances the clock
func (f *FakeTimeProvider) AfterFunc(d time.Duration, fn func()) coreport.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	timer := &FakeTimer{deadline: f.current.Add(d), fn: fn}
	f.timers = append(f.timers, timer)
	return timer
}

// Advance moves the clock forward and fires every timer whose deadline passed
func (f *FakeTimeProvider) Advance(d time.Duration) {
	f.mu.Lock()
	f.current = f.current.Add(d)
	var due []*FakeTimer
	remaining := f.timers[:0]
	for _, timer := range f.timers {
		if !timer.stopped && !timer.deadline.After(f.current) {
			due = append(due, timer)
		} else {
			remaining = append(remaining, timer)
		}
	}
	f.timers = remaining
	f.mu.Unlock()

	for _, timer := range due {
		timer.fire()
	}
}

// FakeTimer is a timer handle controlled by FakeTimeProvider
type FakeTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
	mu       sync.Mutex
}

// Stop cancels the timer if it has not fired
func (t *FakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (t *FakeTimer) fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}
