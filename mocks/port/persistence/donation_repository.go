package persistence

import (
	"context"
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockDonationRepository is a mock implementation of the DonationRepository port
type MockDonationRepository struct {
	mock.Mock
}

// Create saves a new donation
func (m *MockDonationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

// GetByID retrieves a donation by ID
func (m *MockDonationRepository) GetByID(ctx context.Context, id uint64) (*entity.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Donation), args.Error(1)
}

// GetByOrderID retrieves a donation by its gateway order id
func (m *MockDonationRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Donation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Donation), args.Error(1)
}

// UpdateStatus persists a status change
func (m *MockDonationRepository) UpdateStatus(ctx context.Context, id uint64, status entity.DonationStatus, paymentID, orderID string, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, paymentID, orderID, updatedAt)
	return args.Error(0)
}

// ClaimCompletion atomically claims the transition into COMPLETED
func (m *MockDonationRepository) ClaimCompletion(ctx context.Context, id uint64, paymentID, orderID string, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paymentID, orderID, updatedAt)
	return args.Bool(0), args.Error(1)
}

// AttachOrder stores the gateway order id
func (m *MockDonationRepository) AttachOrder(ctx context.Context, id uint64, orderID string, updatedAt time.Time) error {
	args := m.Called(ctx, id, orderID, updatedAt)
	return args.Error(0)
}

// ListAll retrieves every donation
func (m *MockDonationRepository) ListAll(ctx context.Context) ([]*entity.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Donation), args.Error(1)
}

// ListPendingWithOrder retrieves PENDING donations that have an order id
func (m *MockDonationRepository) ListPendingWithOrder(ctx context.Context) ([]*entity.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Donation), args.Error(1)
}

// ListCreatedAfter retrieves donations created after the given time
func (m *MockDonationRepository) ListCreatedAfter(ctx context.Context, after time.Time) ([]*entity.Donation, error) {
	args := m.Called(ctx, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Donation), args.Error(1)
}

// ListPendingForFollowup retrieves stale PENDING donations below the reminder cap
func (m *MockDonationRepository) ListPendingForFollowup(ctx context.Context, before time.Time, maxFollowups int) ([]*entity.Donation, error) {
	args := m.Called(ctx, before, maxFollowups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Donation), args.Error(1)
}

// IncrementFollowupCount conditionally bumps the reminder counter
func (m *MockDonationRepository) IncrementFollowupCount(ctx context.Context, id uint64, cap int, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, cap, updatedAt)
	return args.Bool(0), args.Error(1)
}
