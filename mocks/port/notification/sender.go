package notification

import (
	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of the notification Sender port
type MockSender struct {
	mock.Mock
}

// Send delivers one message
func (m *MockSender) Send(address, subject, body string) error {
	args := m.Called(address, subject, body)
	return args.Error(0)
}
