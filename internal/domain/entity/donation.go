package entity

import (
	"strings"
	"time"

	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
)

// SupportedCurrencies lists the currency codes the gateway accepts
var SupportedCurrencies = map[string]string{
	"INR": "Indian Rupee",
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"AUD": "Australian Dollar",
	"CAD": "Canadian Dollar",
	"SGD": "Singapore Dollar",
	"AED": "UAE Dirham",
	"MYR": "Malaysian Ringgit",
}

// IsCurrencySupported validates a currency code
func IsCurrencySupported(currency string) bool {
	_, ok := SupportedCurrencies[strings.ToUpper(currency)]
	return ok
}

// Donation represents a single pledge of funds tracked through its payment lifecycle
type Donation struct {
	ID                 uint64         // Unique identifier, assigned by the store
	DonorName          string         // Immutable donor details
	DonorEmail         string
	DonorPhone         string
	Amount             string         // Amount as a string with 2 decimal places
	AmountMinorUnits   int64          // Amount in minor currency units for precise arithmetic
	Currency           string         // ISO currency code
	CauseID            *uint64        // Target cause; nil means the general fund
	Message            string         // Free-text message from the donor
	Status             DonationStatus // Current lifecycle status
	PaymentID          string         // Gateway payment id, set post-creation
	OrderID            string         // Gateway order id, set post-creation
	FollowupEmailCount int            // Reminder emails sent so far, capped
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewDonation creates a new PENDING donation with basic validation
func NewDonation(
	donorName string,
	donorEmail string,
	donorPhone string,
	amount string,
	currency string,
	causeID *uint64,
	message string,
	timeProvider coreport.TimeProvider,
) (*Donation, error) {
	if strings.TrimSpace(donorName) == "" || strings.TrimSpace(donorEmail) == "" {
		return nil, errs.ErrInvalidDonor
	}

	minorUnits, err := ValidateAndConvertAmount(amount)
	if err != nil {
		return nil, err
	}
	if minorUnits == 0 {
		return nil, errs.ErrInvalidAmount
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !IsCurrencySupported(currency) {
		return nil, errs.ErrInvalidCurrency
	}

	now := timeProvider.Now()
	return &Donation{
		DonorName:        donorName,
		DonorEmail:       donorEmail,
		DonorPhone:       donorPhone,
		Amount:           EnsureTwoDecimalPlaces(amount),
		AmountMinorUnits: minorUnits,
		Currency:         currency,
		CauseID:          causeID,
		Message:          message,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// HasOrder reports whether a gateway order has been attached to this donation
func (d *Donation) HasOrder() bool {
	return strings.TrimSpace(d.OrderID) != ""
}

// ApplyStatus sets the new status and optionally overwrites the gateway ids.
// Empty paymentID/orderID leave the stored values untouched.
func (d *Donation) ApplyStatus(status DonationStatus, paymentID, orderID string, timeProvider coreport.TimeProvider) {
	d.Status = status
	if paymentID != "" {
		d.PaymentID = paymentID
	}
	if orderID != "" {
		d.OrderID = orderID
	}
	d.UpdatedAt = timeProvider.Now()
}
