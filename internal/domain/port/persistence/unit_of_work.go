package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating donation and cause writes
// inside a single storage transaction, so a status change and its cause
// aggregation either both commit or both roll back
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetDonationRepository returns a donation repository bound to the current transaction
	GetDonationRepository(ctx context.Context) DonationRepository

	// GetCauseRepository returns a cause repository bound to the current transaction
	GetCauseRepository(ctx context.Context) CauseRepository
}
