package reconciliation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	"github.com/alphaseam/donorbox-backend/internal/domain/usecase/donation"
	"github.com/alphaseam/donorbox-backend/mocks/port/core"
	gatewaymocks "github.com/alphaseam/donorbox-backend/mocks/port/gateway"
	"github.com/alphaseam/donorbox-backend/mocks/port/persistence"
)

// mockTransitioner stands in for the donation lifecycle manager
type mockTransitioner struct {
	mock.Mock
}

func (m *mockTransitioner) Transition(ctx context.Context, req donation.TransitionRequest) (*entity.Donation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Donation), args.Error(1)
}

// mockFollowupNotifier records reminder sends from the follow-up sweep
type mockFollowupNotifier struct {
	mock.Mock
}

func (m *mockFollowupNotifier) SendFollowup(d *entity.Donation, orgAddress string) {
	m.Called(d, orgAddress)
}

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type reconcilerFixture struct {
	donationRepo *persistence.MockDonationRepository
	gateway      *gatewaymocks.MockPaymentGateway
	lifecycle    *mockTransitioner
	notifier     *mockFollowupNotifier
	reconciler   *Reconciler
}

func newReconcilerFixture() *reconcilerFixture {
	f := &reconcilerFixture{
		donationRepo: new(persistence.MockDonationRepository),
		gateway:      new(gatewaymocks.MockPaymentGateway),
		lifecycle:    new(mockTransitioner),
		notifier:     new(mockFollowupNotifier),
	}

	timeProvider := new(core.MockTimeProvider)
	timeProvider.On("Now").Return(fixedTime)

	f.reconciler = NewReconciler(
		f.donationRepo,
		f.gateway,
		f.lifecycle,
		f.notifier,
		timeProvider,
		core.NoopLogger{},
		Config{
			RecentWindow:   24 * time.Hour,
			FollowupMaxAge: 2 * time.Hour,
			FollowupCap:    2,
			NotifyAddress:  "org@example.com",
		},
	)
	return f
}

func sweepDonation(id uint64, status entity.DonationStatus, orderID string) *entity.Donation {
	return &entity.Donation{
		ID:       id,
		Status:   status,
		OrderID:  orderID,
		Currency: "INR",
		Amount:   "500.00",
	}
}

func TestReconciler_RunStatusSweep(t *testing.T) {
	ctx := context.Background()
	recentCutoff := fixedTime.Add(-24 * time.Hour)

	t.Run("should transition a pending donation the gateway reports paid", func(t *testing.T) {
		f := newReconcilerFixture()
		d := sweepDonation(1, entity.StatusPending, "order_1")

		f.donationRepo.On("ListPendingWithOrder", ctx).Return([]*entity.Donation{d}, nil)
		f.donationRepo.On("ListCreatedAfter", ctx, recentCutoff).Return(nil, nil)
		f.gateway.On("GetOrderStatus", ctx, "order_1").Return("paid", nil)
		f.lifecycle.On("Transition", ctx, donation.TransitionRequest{
			DonationID:    1,
			NewStatus:     entity.StatusCompleted,
			OrderID:       "order_1",
			NotifyAddress: "org@example.com",
		}).Return(d, nil)

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 1, updated)
		f.lifecycle.AssertExpectations(t)
	})

	t.Run("should short-circuit when the gateway status is unchanged", func(t *testing.T) {
		f := newReconcilerFixture()
		d := sweepDonation(1, entity.StatusPending, "order_1")

		f.donationRepo.On("ListPendingWithOrder", ctx).Return([]*entity.Donation{d}, nil)
		f.donationRepo.On("ListCreatedAfter", ctx, recentCutoff).Return(nil, nil)
		f.gateway.On("GetOrderStatus", ctx, "order_1").Return("created", nil)

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 0, updated)
		f.lifecycle.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything)
	})

	t.Run("should deduplicate candidates across the pending and recent sets", func(t *testing.T) {
		f := newReconcilerFixture()
		d1 := sweepDonation(1, entity.StatusPending, "order_1")
		d2 := sweepDonation(2, entity.StatusFailed, "order_2")
		noOrder := sweepDonation(3, entity.StatusPending, "")

		f.donationRepo.On("ListPendingWithOrder", ctx).Return([]*entity.Donation{d1}, nil)
		f.donationRepo.On("ListCreatedAfter", ctx, recentCutoff).Return([]*entity.Donation{d1, d2, noOrder}, nil)
		f.gateway.On("GetOrderStatus", ctx, "order_1").Return("created", nil)
		f.gateway.On("GetOrderStatus", ctx, "order_2").Return("refunded", nil)
		f.lifecycle.On("Transition", ctx, mock.AnythingOfType("donation.TransitionRequest")).Return(d2, nil)

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 1, updated)
		f.gateway.AssertNumberOfCalls(t, "GetOrderStatus", 2)
	})

	t.Run("should isolate gateway failures per donation", func(t *testing.T) {
		f := newReconcilerFixture()
		d1 := sweepDonation(1, entity.StatusPending, "order_1")
		d2 := sweepDonation(2, entity.StatusPending, "order_2")

		f.donationRepo.On("ListPendingWithOrder", ctx).Return([]*entity.Donation{d1, d2}, nil)
		f.donationRepo.On("ListCreatedAfter", ctx, recentCutoff).Return(nil, nil)
		f.gateway.On("GetOrderStatus", ctx, "order_1").
			Return("", errs.NewGatewayError("fetch_order", "order_1", errs.ErrGatewayUnavailable))
		f.gateway.On("GetOrderStatus", ctx, "order_2").Return("failed", nil)
		f.lifecycle.On("Transition", ctx, mock.AnythingOfType("donation.TransitionRequest")).Return(d2, nil)

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 1, updated)
	})

	t.Run("should not count a donation whose transition fails", func(t *testing.T) {
		f := newReconcilerFixture()
		d := sweepDonation(1, entity.StatusPending, "order_1")

		f.donationRepo.On("ListPendingWithOrder", ctx).Return([]*entity.Donation{d}, nil)
		f.donationRepo.On("ListCreatedAfter", ctx, recentCutoff).Return(nil, nil)
		f.gateway.On("GetOrderStatus", ctx, "order_1").Return("paid", nil)
		f.lifecycle.On("Transition", ctx, mock.AnythingOfType("donation.TransitionRequest")).
			Return(nil, errs.ErrDatabaseConnection)

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 0, updated)
	})

	t.Run("should keep sweeping when one candidate list fails", func(t *testing.T) {
		f := newReconcilerFixture()
		d := sweepDonation(2, entity.StatusPending, "order_2")

		f.donationRepo.On("ListPendingWithOrder", ctx).Return(nil, errs.ErrDatabaseConnection)
		f.donationRepo.On("ListCreatedAfter", ctx, recentCutoff).Return([]*entity.Donation{d}, nil)
		f.gateway.On("GetOrderStatus", ctx, "order_2").Return("paid", nil)
		f.lifecycle.On("Transition", ctx, mock.AnythingOfType("donation.TransitionRequest")).Return(d, nil)

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 1, updated)
	})

	t.Run("should skip a firing while another sweep holds the guard", func(t *testing.T) {
		f := newReconcilerFixture()

		f.reconciler.statusSweepMu.Lock()
		defer f.reconciler.statusSweepMu.Unlock()

		updated := f.reconciler.RunStatusSweep(ctx)

		assert.Equal(t, 0, updated)
		f.donationRepo.AssertNotCalled(t, "ListPendingWithOrder", mock.Anything)
	})
}

func TestReconciler_ForceCheckAll(t *testing.T) {
	f := newReconcilerFixture()
	d := sweepDonation(1, entity.StatusPending, "order_1")

	done := make(chan struct{})
	f.donationRepo.On("ListAll", mock.Anything).Return([]*entity.Donation{d}, nil)
	f.gateway.On("GetOrderStatus", mock.Anything, "order_1").Return("paid", nil)
	f.lifecycle.On("Transition", mock.Anything, mock.AnythingOfType("donation.TransitionRequest")).
		Return(d, nil).
		Run(func(args mock.Arguments) { close(done) })

	f.reconciler.ForceCheckAll()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("force check did not reach the lifecycle manager in time")
	}
	f.lifecycle.AssertExpectations(t)
}
