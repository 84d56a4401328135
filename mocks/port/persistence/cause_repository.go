package persistence

import (
	"context"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockCauseRepository is a mock implementation of the CauseRepository port
type MockCauseRepository struct {
	mock.Mock
}

// Create saves a new cause
func (m *MockCauseRepository) Create(ctx context.Context, cause *entity.Cause) error {
	args := m.Called(ctx, cause)
	return args.Error(0)
}

// GetByID retrieves a cause by ID
func (m *MockCauseRepository) GetByID(ctx context.Context, id uint64) (*entity.Cause, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cause), args.Error(1)
}

// ListAll retrieves every cause
func (m *MockCauseRepository) ListAll(ctx context.Context) ([]*entity.Cause, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Cause), args.Error(1)
}

// AddToCurrentAmount atomically increments the raised total
func (m *MockCauseRepository) AddToCurrentAmount(ctx context.Context, id uint64, amountMinorUnits int64) error {
	args := m.Called(ctx, id, amountMinorUnits)
	return args.Error(0)
}
