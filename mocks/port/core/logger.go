package core

import (
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of the core.Logger port
type MockLogger struct {
	mock.Mock
}

// Debug logs debug messages
func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Info logs informational messages
func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Warn logs warning messages
func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Error logs error messages
func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

// Flush ensures all buffered logs are written
func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}

// NoopLogger accepts every call without recording expectations. Most tests
// only care that logging does not interfere, not what was logged.
type NoopLogger struct{}

func (NoopLogger) Debug(message string, fields map[string]any) {}
func (NoopLogger) Info(message string, fields map[string]any)  {}
func (NoopLogger) Warn(message string, fields map[string]any)  {}
func (NoopLogger) Error(message string, fields map[string]any) {}
func (NoopLogger) Flush() error                                { return nil }
