package persistence

import (
	"context"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
)

// CauseRepository defines essential methods to interact with cause data
type CauseRepository interface {
	// GetByID retrieves a cause by ID
	//
	// Possible errors:
	// - ErrCauseNotFound: If cause with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Cause, error)

	// Create creates a new cause
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, cause *entity.Cause) error

	// ListAll retrieves every cause
	ListAll(ctx context.Context) ([]*entity.Cause, error)

	// AddToCurrentAmount atomically adds the given minor-unit amount to the
	// cause's running total. The increment happens at the storage layer
	// (current_amount = current_amount + ?), never read-modify-write in
	// application memory, so concurrent completions cannot lose updates.
	//
	// Possible errors:
	// - ErrCauseNotFound: If cause doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	AddToCurrentAmount(ctx context.Context, id uint64, amountMinorUnits int64) error
}
