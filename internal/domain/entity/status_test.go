package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	t.Run("Known statuses", func(t *testing.T) {
		for _, status := range []string{"PENDING", "COMPLETED", "FAILED", "REFUNDED"} {
			assert.True(t, IsValidStatus(status), status)
		}
	})

	t.Run("Unknown statuses", func(t *testing.T) {
		for _, status := range []string{"", "pending", "DONE", "CANCELLED", "completed "} {
			assert.False(t, IsValidStatus(status), status)
		}
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
}

func TestStatusFromGateway(t *testing.T) {
	testCases := []struct {
		gatewayStatus string
		expected      DonationStatus
	}{
		{"paid", StatusCompleted},
		{"success", StatusCompleted},
		{"completed", StatusCompleted},
		{"PAID", StatusCompleted},
		{"  Paid  ", StatusCompleted},
		{"failed", StatusFailed},
		{"error", StatusFailed},
		{"refunded", StatusRefunded},
		// Unknown and future gateway values stay PENDING instead of failing
		{"created", StatusPending},
		{"attempted", StatusPending},
		{"", StatusPending},
		{"something-new", StatusPending},
	}

	for _, tc := range testCases {
		t.Run(tc.gatewayStatus, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusFromGateway(tc.gatewayStatus))
		})
	}
}
