package entity

import "strings"

// DonationStatus represents the lifecycle state of a donation
type DonationStatus string

// Donation lifecycle states
const (
	StatusPending   DonationStatus = "PENDING"
	StatusCompleted DonationStatus = "COMPLETED"
	StatusFailed    DonationStatus = "FAILED"
	StatusRefunded  DonationStatus = "REFUNDED"
)

// IsValidStatus checks if the given string is a known donation status
func IsValidStatus(status string) bool {
	switch DonationStatus(status) {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal returns true for statuses that end the payment lifecycle
func (s DonationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRefunded
}

// StatusFromGateway maps the payment gateway's status vocabulary to a
// DonationStatus. The mapping is total: unknown or future gateway values
// ("created", "attempted", ...) map to PENDING rather than failing, since
// gateway vocabularies evolve independently of this service.
func StatusFromGateway(gatewayStatus string) DonationStatus {
	switch strings.ToLower(strings.TrimSpace(gatewayStatus)) {
	case "paid", "success", "completed":
		return StatusCompleted
	case "failed", "error":
		return StatusFailed
	case "refunded":
		return StatusRefunded
	default:
		return StatusPending
	}
}
