package donation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	"github.com/alphaseam/donorbox-backend/mocks/port/core"
	gatewaymocks "github.com/alphaseam/donorbox-backend/mocks/port/gateway"
	"github.com/alphaseam/donorbox-backend/mocks/port/persistence"
)

// mockNotifier records dispatches from the lifecycle manager
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Dispatch(donation *entity.Donation, orgAddress string) {
	m.Called(donation, orgAddress)
}

// testFixture bundles the lifecycle manager with all its mocked dependencies
type testFixture struct {
	uow          *persistence.MockUnitOfWork
	donationRepo *persistence.MockDonationRepository
	txRepo       *persistence.MockDonationRepository
	causeRepo    *persistence.MockCauseRepository
	txCauseRepo  *persistence.MockCauseRepository
	gateway      *gatewaymocks.MockPaymentGateway
	notifier     *mockNotifier
	service      *Service
}

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newFixture() *testFixture {
	f := &testFixture{
		uow:          new(persistence.MockUnitOfWork),
		donationRepo: new(persistence.MockDonationRepository),
		txRepo:       new(persistence.MockDonationRepository),
		causeRepo:    new(persistence.MockCauseRepository),
		txCauseRepo:  new(persistence.MockCauseRepository),
		gateway:      new(gatewaymocks.MockPaymentGateway),
		notifier:     new(mockNotifier),
	}

	timeProvider := new(core.MockTimeProvider)
	timeProvider.On("Now").Return(fixedTime)

	f.service = NewService(
		f.uow,
		f.donationRepo,
		f.causeRepo,
		f.gateway,
		f.notifier,
		timeProvider,
		core.NoopLogger{},
		"org@example.com",
	)
	return f
}

func pendingDonation(id uint64, causeID *uint64) *entity.Donation {
	return &entity.Donation{
		ID:               id,
		DonorName:        "Asha Rao",
		DonorEmail:       "asha@example.com",
		Amount:           "500.00",
		AmountMinorUnits: 50000,
		Currency:         "INR",
		CauseID:          causeID,
		Status:           entity.StatusPending,
		OrderID:          "order_abc",
	}
}

func TestService_Transition(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(context.Background(), struct{ name string }{"tx"}, "tx")

	t.Run("should apply cause increment when winning the completion edge", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(3)
		donation := pendingDonation(1, &causeID)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("ClaimCompletion", txCtx, uint64(1), "pay_1", "order_abc", fixedTime).Return(true, nil)
		f.uow.On("GetCauseRepository", txCtx).Return(f.txCauseRepo)
		f.txCauseRepo.On("AddToCurrentAmount", txCtx, causeID, int64(50000)).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.notifier.On("Dispatch", donation, "org@example.com").Return()

		result, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.StatusCompleted,
			PaymentID:  "pay_1",
			OrderID:    "order_abc",
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, result.Status)
		assert.Equal(t, "pay_1", result.PaymentID)
		f.txRepo.AssertExpectations(t)
		f.txCauseRepo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("should skip cause increment when the edge was already claimed", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(3)
		donation := pendingDonation(1, &causeID)
		donation.Status = entity.StatusCompleted

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("ClaimCompletion", txCtx, uint64(1), "pay_1", "", fixedTime).Return(false, nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.notifier.On("Dispatch", donation, "org@example.com").Return()

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.StatusCompleted,
			PaymentID:  "pay_1",
		})

		assert.NoError(t, err)
		// Re-applying COMPLETED never touches the aggregation, but still notifies
		f.uow.AssertNotCalled(t, "GetCauseRepository", txCtx)
		f.txCauseRepo.AssertNotCalled(t, "AddToCurrentAmount", mock.Anything, mock.Anything, mock.Anything)
		f.notifier.AssertExpectations(t)
	})

	t.Run("should not touch any cause for a general fund donation", func(t *testing.T) {
		f := newFixture()
		donation := pendingDonation(2, nil)

		f.donationRepo.On("GetByID", ctx, uint64(2)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("ClaimCompletion", txCtx, uint64(2), "pay_2", "", fixedTime).Return(true, nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.notifier.On("Dispatch", donation, "org@example.com").Return()

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 2,
			NewStatus:  entity.StatusCompleted,
			PaymentID:  "pay_2",
		})

		assert.NoError(t, err)
		f.uow.AssertNotCalled(t, "GetCauseRepository", txCtx)
	})

	t.Run("should use a plain status update for non-completed transitions", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(3)
		donation := pendingDonation(1, &causeID)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("UpdateStatus", txCtx, uint64(1), entity.StatusFailed, "", "", fixedTime).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.notifier.On("Dispatch", donation, "org@example.com").Return()

		result, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.StatusFailed,
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, result.Status)
		f.txRepo.AssertNotCalled(t, "ClaimCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "GetCauseRepository", txCtx)
	})

	t.Run("should roll back and suppress notification on store failure", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(3)
		donation := pendingDonation(1, &causeID)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("ClaimCompletion", txCtx, uint64(1), "pay_1", "", fixedTime).Return(false, errs.ErrDatabaseConnection)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.StatusCompleted,
			PaymentID:  "pay_1",
		})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.uow.AssertCalled(t, "Rollback", txCtx)
		f.uow.AssertNotCalled(t, "Commit", txCtx)
		f.notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("should roll back when the cause increment fails", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(3)
		donation := pendingDonation(1, &causeID)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("ClaimCompletion", txCtx, uint64(1), "pay_1", "", fixedTime).Return(true, nil)
		f.uow.On("GetCauseRepository", txCtx).Return(f.txCauseRepo)
		f.txCauseRepo.On("AddToCurrentAmount", txCtx, causeID, int64(50000)).Return(errs.ErrCauseNotFound)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.StatusCompleted,
			PaymentID:  "pay_1",
		})

		assert.ErrorIs(t, err, errs.ErrCauseNotFound)
		f.uow.AssertCalled(t, "Rollback", txCtx)
		f.notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("should suppress notification on commit failure", func(t *testing.T) {
		f := newFixture()
		donation := pendingDonation(1, nil)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("UpdateStatus", txCtx, uint64(1), entity.StatusFailed, "", "", fixedTime).Return(nil)
		f.uow.On("Commit", txCtx).Return(errs.ErrDatabaseConnection)

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.StatusFailed,
		})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("should pass the explicit notify address through", func(t *testing.T) {
		f := newFixture()
		donation := pendingDonation(1, nil)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetDonationRepository", txCtx).Return(f.txRepo)
		f.txRepo.On("UpdateStatus", txCtx, uint64(1), entity.StatusRefunded, "", "", fixedTime).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.notifier.On("Dispatch", donation, "sweeps@example.com").Return()

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID:    1,
			NewStatus:     entity.StatusRefunded,
			NotifyAddress: "sweeps@example.com",
		})

		assert.NoError(t, err)
		f.notifier.AssertExpectations(t)
	})

	t.Run("should reject invalid donation id", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 0,
			NewStatus:  entity.StatusCompleted,
		})

		assert.ErrorIs(t, err, errs.ErrInvalidDonationID)
		f.donationRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 1,
			NewStatus:  entity.DonationStatus("CANCELLED"),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
		f.donationRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should propagate donation not found", func(t *testing.T) {
		f := newFixture()

		f.donationRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrDonationNotFound)

		_, err := f.service.Transition(ctx, TransitionRequest{
			DonationID: 99,
			NewStatus:  entity.StatusFailed,
		})

		assert.ErrorIs(t, err, errs.ErrDonationNotFound)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
