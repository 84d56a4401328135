package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInvalidAmount.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
	if ErrDonationNotFound.Error() != "donation not found" {
		t.Errorf("ErrDonationNotFound has unexpected message: %s", ErrDonationNotFound.Error())
	}
	if ErrSignatureVerification.Error() != "payment signature verification failed" {
		t.Errorf("ErrSignatureVerification has unexpected message: %s", ErrSignatureVerification.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidAmount", ErrInvalidAmount, 4001},
		{"NegativeAmount", ErrNegativeAmount, 4001},
		{"AmountOverflow", ErrAmountOverflow, 4006},
		{"InvalidDonationID", ErrInvalidDonationID, 4002},
		{"InvalidCurrency", ErrInvalidCurrency, 4003},
		{"InvalidStatus", ErrInvalidStatus, 4004},
		{"InvalidDonor", ErrInvalidDonor, 4005},
		{"SignatureVerification", ErrSignatureVerification, 4010},
		{"DonationNotFound", ErrDonationNotFound, 4040},
		{"CauseNotFound", ErrCauseNotFound, 4041},
		{"GatewayUnavailable", ErrGatewayUnavailable, 5020},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrDonationNotFound), 4040},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestDonationError(t *testing.T) {
	baseErr := ErrInvalidStatus
	donationErr := &DonationError{
		DonationID: 123,
		Status:     "PENDING",
		Reason:     "validation failed",
		Err:        baseErr,
	}

	// Test Error method
	expectedErrMsg := "donation operation failed for donation 123 (status: PENDING): validation failed - invalid donation status"
	if donationErr.Error() != expectedErrMsg {
		t.Errorf("DonationError.Error() = %s, want %s", donationErr.Error(), expectedErrMsg)
	}

	// Test Unwrap method
	if !errors.Is(donationErr, baseErr) {
		t.Errorf("errors.Is(donationErr, baseErr) = false, want true")
	}

	// Log fields carry the error code for structured logging
	fields := donationErr.LogFields()
	if fields["donation_id"] != uint64(123) {
		t.Errorf("LogFields donation_id = %v, want 123", fields["donation_id"])
	}
	if fields["error_code"] != CodeInvalidStatus {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInvalidStatus)
	}
}

func TestGatewayError(t *testing.T) {
	baseErr := fmt.Errorf("%w: connection refused", ErrGatewayUnavailable)
	gwErr := NewGatewayError("fetch_order", "order_abc", baseErr)

	var gwErrCast *GatewayError
	if !errors.As(gwErr, &gwErrCast) {
		t.Fatalf("errors.As failed: not a *GatewayError")
	}

	if gwErrCast.OrderID != "order_abc" {
		t.Errorf("OrderID = %s, want order_abc", gwErrCast.OrderID)
	}
	if gwErrCast.Operation != "fetch_order" {
		t.Errorf("Operation = %s, want fetch_order", gwErrCast.Operation)
	}

	// The sentinel must be reachable both through Is and the helper
	if !errors.Is(gwErr, ErrGatewayUnavailable) {
		t.Errorf("errors.Is(gwErr, ErrGatewayUnavailable) = false, want true")
	}
	if !IsGatewayError(gwErr) {
		t.Errorf("IsGatewayError(gwErr) = false, want true")
	}
}

func TestErrorHelperFunctions(t *testing.T) {
	if IsNotFoundError(ErrInvalidAmount) {
		t.Errorf("IsNotFoundError(ErrInvalidAmount) = true, want false")
	}
	if !IsNotFoundError(ErrDonationNotFound) {
		t.Errorf("IsNotFoundError(ErrDonationNotFound) = false, want true")
	}
	if !IsNotFoundError(ErrCauseNotFound) {
		t.Errorf("IsNotFoundError(ErrCauseNotFound) = false, want true")
	}

	// Test wrapped errors
	wrappedNotFound := fmt.Errorf("wrapped: %w", ErrDonationNotFound)
	if !IsDonationNotFoundError(wrappedNotFound) {
		t.Errorf("IsDonationNotFoundError(wrappedNotFound) = false, want true")
	}

	wrappedSignature := fmt.Errorf("wrapped: %w", ErrSignatureVerification)
	if !IsSignatureError(wrappedSignature) {
		t.Errorf("IsSignatureError(wrappedSignature) = false, want true")
	}
}
