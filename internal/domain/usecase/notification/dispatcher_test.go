package notification

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
	"github.com/alphaseam/donorbox-backend/mocks/port/core"
	notifmocks "github.com/alphaseam/donorbox-backend/mocks/port/notification"
	"github.com/alphaseam/donorbox-backend/mocks/port/persistence"
)

const (
	orgAddress   = "org@example.com"
	recheckDelay = 10 * time.Minute
)

type dispatcherFixture struct {
	donationRepo *persistence.MockDonationRepository
	causeRepo    *persistence.MockCauseRepository
	sender       *notifmocks.MockSender
	clock        *core.FakeTimeProvider
	dispatcher   *Dispatcher
}

func newDispatcherFixture() *dispatcherFixture {
	f := &dispatcherFixture{
		donationRepo: new(persistence.MockDonationRepository),
		causeRepo:    new(persistence.MockCauseRepository),
		sender:       new(notifmocks.MockSender),
		clock:        core.NewFakeTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.dispatcher = NewDispatcher(
		f.donationRepo,
		f.causeRepo,
		f.sender,
		f.clock,
		core.NoopLogger{},
		recheckDelay,
	)
	return f
}

func testDonation(status entity.DonationStatus) *entity.Donation {
	return &entity.Donation{
		ID:               1,
		DonorName:        "Asha Rao",
		DonorEmail:       "asha@example.com",
		Amount:           "500.00",
		AmountMinorUnits: 50000,
		Currency:         "INR",
		Status:           status,
		PaymentID:        "pay_1",
		OrderID:          "order_abc",
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Run("should send donor and org pair for a completed donation", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusCompleted)

		f.sender.On("Send", "asha@example.com", "Thank You for Your Donation - Payment Successful", mock.Anything).Return(nil)
		f.sender.On("Send", orgAddress, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		f.dispatcher.Dispatch(donation, orgAddress)

		f.sender.AssertExpectations(t)
		assert.Equal(t, 0, f.dispatcher.PendingRecheckCount())
	})

	t.Run("should send pair and arm one re-check for a pending donation", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusPending)

		f.sender.On("Send", "asha@example.com", "Your Donation Is Being Processed", mock.Anything).Return(nil)
		f.sender.On("Send", orgAddress, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		f.dispatcher.Dispatch(donation, orgAddress)

		assert.Equal(t, 1, f.dispatcher.PendingRecheckCount())
	})

	t.Run("should replace the timer on repeated pending dispatches", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusPending)

		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		f.dispatcher.Dispatch(donation, orgAddress)
		f.dispatcher.Dispatch(donation, orgAddress)

		assert.Equal(t, 1, f.dispatcher.PendingRecheckCount())
	})

	t.Run("should swallow sender failures", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusFailed)

		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		assert.NotPanics(t, func() {
			f.dispatcher.Dispatch(donation, orgAddress)
		})
	})

	t.Run("should name the cause in the messages", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusCompleted)
		causeID := uint64(3)
		donation.CauseID = &causeID

		f.causeRepo.On("GetByID", mock.Anything, causeID).Return(&entity.Cause{ID: causeID, Title: "Education Support"}, nil)
		f.sender.On("Send", "asha@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Education Support")
		})).Return(nil)
		f.sender.On("Send", orgAddress, mock.Anything, mock.Anything).Return(nil)

		f.dispatcher.Dispatch(donation, orgAddress)

		f.sender.AssertExpectations(t)
	})
}

func TestDispatcher_DeferredRecheck(t *testing.T) {
	t.Run("should send the resolved status when the re-check fires", func(t *testing.T) {
		f := newDispatcherFixture()
		pending := testDonation(entity.StatusPending)

		f.sender.On("Send", "asha@example.com", "Your Donation Is Being Processed", mock.Anything).Return(nil).Once()
		f.sender.On("Send", orgAddress, mock.AnythingOfType("string"), mock.Anything).Return(nil)
		f.dispatcher.Dispatch(pending, orgAddress)

		// Donation resolved between the dispatch and the timer firing
		completed := testDonation(entity.StatusCompleted)
		f.donationRepo.On("GetByID", mock.Anything, uint64(1)).Return(completed, nil)
		f.sender.On("Send", "asha@example.com", "Thank You for Your Donation - Payment Successful", mock.Anything).Return(nil).Once()

		f.clock.Advance(recheckDelay)

		f.sender.AssertExpectations(t)
		assert.Equal(t, 0, f.dispatcher.PendingRecheckCount())
	})

	t.Run("should stay quiet when the donation is still pending", func(t *testing.T) {
		f := newDispatcherFixture()
		pending := testDonation(entity.StatusPending)

		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
		f.dispatcher.Dispatch(pending, orgAddress)

		f.donationRepo.On("GetByID", mock.Anything, uint64(1)).Return(pending, nil)

		f.clock.Advance(recheckDelay)

		// Only the initial pair went out; the follow-up sweep owns long-term reminders
		f.sender.AssertExpectations(t)
		f.sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("should cancel the re-check when a terminal dispatch arrives first", func(t *testing.T) {
		f := newDispatcherFixture()
		pending := testDonation(entity.StatusPending)
		completed := testDonation(entity.StatusCompleted)

		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		f.dispatcher.Dispatch(pending, orgAddress)
		f.dispatcher.Dispatch(completed, orgAddress)

		assert.Equal(t, 0, f.dispatcher.PendingRecheckCount())

		f.clock.Advance(recheckDelay)

		// Two dispatched pairs, no third from the cancelled timer
		f.sender.AssertNumberOfCalls(t, "Send", 4)
		f.donationRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("should tolerate a load failure when the timer fires", func(t *testing.T) {
		f := newDispatcherFixture()
		pending := testDonation(entity.StatusPending)

		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
		f.dispatcher.Dispatch(pending, orgAddress)

		f.donationRepo.On("GetByID", mock.Anything, uint64(1)).Return(nil, errs.ErrDatabaseConnection)

		assert.NotPanics(t, func() {
			f.clock.Advance(recheckDelay)
		})
		f.sender.AssertNumberOfCalls(t, "Send", 2)
	})
}

func TestDispatcher_SendFollowup(t *testing.T) {
	t.Run("should send the reminder to the donor only", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusPending)
		donation.FollowupEmailCount = 1

		f.sender.On("Send", "asha@example.com", "Your Donation Is Still Pending", mock.Anything).Return(nil)

		f.dispatcher.SendFollowup(donation, orgAddress)

		f.sender.AssertExpectations(t)
		f.sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("should swallow a delivery failure", func(t *testing.T) {
		f := newDispatcherFixture()
		donation := testDonation(entity.StatusPending)

		f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		assert.NotPanics(t, func() {
			f.dispatcher.SendFollowup(donation, orgAddress)
		})
	})
}

func TestDispatcher_Shutdown(t *testing.T) {
	f := newDispatcherFixture()
	pending := testDonation(entity.StatusPending)

	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.dispatcher.Dispatch(pending, orgAddress)
	assert.Equal(t, 1, f.dispatcher.PendingRecheckCount())

	f.dispatcher.Shutdown()

	assert.Equal(t, 0, f.dispatcher.PendingRecheckCount())

	// A dispatch after shutdown still notifies but arms no new timer
	f.dispatcher.Dispatch(pending, orgAddress)
	assert.Equal(t, 0, f.dispatcher.PendingRecheckCount())
}
