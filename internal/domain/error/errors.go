package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount     = 4001
	CodeInvalidDonationID = 4002
	CodeInvalidCurrency   = 4003
	CodeInvalidStatus     = 4004
	CodeInvalidRequest    = 4005
	CodeAmountOverflow    = 4006
	CodeInvalidSignature  = 4010
	CodeDonationNotFound  = 4040
	CodeCauseNotFound     = 4041

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeGatewayUnavailable = 5020
)

// Base error types
var (
	// ErrInvalidAmount is returned when the donation amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the donation amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidDonationID is returned when the donation ID is not a positive integer
	ErrInvalidDonationID = errors.New("donation ID must be positive")

	// ErrInvalidCurrency is returned when the currency code is not supported
	ErrInvalidCurrency = errors.New("unsupported currency code")

	// ErrInvalidStatus is returned when the donation status is not one of the allowed values
	ErrInvalidStatus = errors.New("invalid donation status")

	// ErrInvalidDonor is returned when required donor details are missing
	ErrInvalidDonor = errors.New("donor name and email are required")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDonationNotFound is returned when the requested donation doesn't exist
	ErrDonationNotFound = errors.New("donation not found")

	// ErrCauseNotFound is returned when the referenced cause doesn't exist
	ErrCauseNotFound = errors.New("cause not found")

	// ErrMissingOrderID is returned when a gateway operation needs an order that was never created
	ErrMissingOrderID = errors.New("donation has no gateway order")

	// ErrSignatureVerification is returned when the gateway payment signature does not verify
	ErrSignatureVerification = errors.New("payment signature verification failed")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be reached
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidDonationID):
		return CodeInvalidDonationID
	case errors.Is(err, ErrInvalidCurrency):
		return CodeInvalidCurrency
	case errors.Is(err, ErrInvalidStatus):
		return CodeInvalidStatus
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidDonor):
		return CodeInvalidRequest
	case errors.Is(err, ErrSignatureVerification):
		return CodeInvalidSignature
	case errors.Is(err, ErrDonationNotFound):
		return CodeDonationNotFound
	case errors.Is(err, ErrCauseNotFound):
		return CodeCauseNotFound
	case errors.Is(err, ErrGatewayUnavailable):
		return CodeGatewayUnavailable
	default:
		return CodeInternalServer
	}
}

// DonationError represents an error related to a donation lifecycle operation
type DonationError struct {
	DonationID uint64
	Status     string
	Reason     string
	Err        error
}

// Error implements the error interface for DonationError
func (e *DonationError) Error() string {
	return fmt.Sprintf("donation operation failed for donation %d (status: %s): %s - %v",
		e.DonationID, e.Status, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *DonationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *DonationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "donation_error",
		"donation_id": e.DonationID,
		"status":      e.Status,
		"reason":      e.Reason,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
}

// NewDonationError creates a detailed donation error
func NewDonationError(donationID uint64, status, reason string, err error) error {
	return &DonationError{
		DonationID: donationID,
		Status:     status,
		Reason:     reason,
		Err:        err,
	}
}

// GatewayError represents a failure talking to the payment gateway
type GatewayError struct {
	OrderID   string
	Operation string
	Err       error
}

// Error implements the error interface for GatewayError
func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s failed for order %s: %v", e.Operation, e.OrderID, e.Err)
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrGatewayUnavailable
func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "gateway_error",
		"order_id":   e.OrderID,
		"operation":  e.Operation,
		"error":      e.Err.Error(),
		"error_code": CodeGatewayUnavailable,
	}
}

// NewGatewayError wraps a gateway failure with the operation and order context
func NewGatewayError(operation, orderID string, err error) error {
	return &GatewayError{
		OrderID:   orderID,
		Operation: operation,
		Err:       err,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDonationNotFound) ||
		errors.Is(err, ErrCauseNotFound)
}

// IsDonationNotFoundError checks if the error is a donation not found error
func IsDonationNotFoundError(err error) bool {
	return errors.Is(err, ErrDonationNotFound)
}

// IsGatewayError checks if the error is related to the payment gateway
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable)
}

// IsSignatureError checks if the error is a signature verification failure
func IsSignatureError(err error) bool {
	return errors.Is(err, ErrSignatureVerification)
}
