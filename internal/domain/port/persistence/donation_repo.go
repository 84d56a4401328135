package persistence

import (
	"context"
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
)

// DonationRepository defines essential methods to interact with donation data
type DonationRepository interface {
	// Create saves a new donation and assigns its ID
	//
	// Possible errors:
	// - ErrCauseNotFound: If the referenced cause does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, donation *entity.Donation) error

	// GetByID retrieves a donation by ID
	//
	// Possible errors:
	// - ErrDonationNotFound: If donation with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Donation, error)

	// GetByOrderID retrieves a donation by its gateway order id
	//
	// Possible errors:
	// - ErrDonationNotFound: If no donation carries the given order id
	// - ErrDatabaseConnection: If database connection fails
	GetByOrderID(ctx context.Context, orderID string) (*entity.Donation, error)

	// UpdateStatus persists a status change together with optional gateway ids.
	// Empty paymentID/orderID leave the stored values untouched.
	//
	// Possible errors:
	// - ErrDonationNotFound: If donation doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatus(ctx context.Context, id uint64, status entity.DonationStatus, paymentID, orderID string, updatedAt time.Time) error

	// ClaimCompletion marks the donation COMPLETED only if it is not COMPLETED
	// already, in a single conditional update. The returned bool reports whether
	// this call won the completion edge; callers use it to apply the cause
	// aggregation exactly once under concurrent completions.
	//
	// Possible errors:
	// - ErrDonationNotFound: If donation doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	ClaimCompletion(ctx context.Context, id uint64, paymentID, orderID string, updatedAt time.Time) (bool, error)

	// AttachOrder stores the gateway order id on a donation
	//
	// Possible errors:
	// - ErrDonationNotFound: If donation doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	AttachOrder(ctx context.Context, id uint64, orderID string, updatedAt time.Time) error

	// ListAll retrieves every donation, newest first
	ListAll(ctx context.Context) ([]*entity.Donation, error)

	// ListPendingWithOrder retrieves PENDING donations that have a gateway order id
	ListPendingWithOrder(ctx context.Context) ([]*entity.Donation, error)

	// ListCreatedAfter retrieves donations created after the given time
	ListCreatedAfter(ctx context.Context, after time.Time) ([]*entity.Donation, error)

	// ListPendingForFollowup retrieves PENDING donations created before the
	// given time whose follow-up counter is below maxFollowups
	ListPendingForFollowup(ctx context.Context, before time.Time, maxFollowups int) ([]*entity.Donation, error)

	// IncrementFollowupCount bumps the follow-up counter only while it is below
	// the cap, in a single conditional update. Returns whether the increment
	// was applied; false means the donation already reached the cap.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	IncrementFollowupCount(ctx context.Context, id uint64, cap int, updatedAt time.Time) (bool, error)
}
