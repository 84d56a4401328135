package persistence

import (
	"context"

	"github.com/alphaseam/donorbox-backend/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

// Begin starts a new transaction
func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return ctx, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

// Commit commits the transaction in the given context
func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback rolls back the transaction in the given context
func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetDonationRepository returns a donation repository bound to the transaction
func (m *MockUnitOfWork) GetDonationRepository(ctx context.Context) persistence.DonationRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.DonationRepository)
}

// GetCauseRepository returns a cause repository bound to the transaction
func (m *MockUnitOfWork) GetCauseRepository(ctx context.Context) persistence.CauseRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.CauseRepository)
}
