package donation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
)

func TestService_CreateDonation(t *testing.T) {
	ctx := context.Background()

	validRequest := func() CreateDonationRequest {
		return CreateDonationRequest{
			DonorName:  "Asha Rao",
			DonorEmail: "asha@example.com",
			DonorPhone: "+911234567890",
			Amount:     "500",
			Currency:   "INR",
			Message:    "Good luck",
		}
	}

	t.Run("should persist a pending donation", func(t *testing.T) {
		f := newFixture()
		f.donationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Donation")).Return(nil)

		donation, err := f.service.CreateDonation(ctx, validRequest())

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusPending, donation.Status)
		assert.Equal(t, "500.00", donation.Amount)
		assert.Equal(t, int64(50000), donation.AmountMinorUnits)
		f.donationRepo.AssertExpectations(t)
	})

	t.Run("should verify the cause exists before persisting", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(3)
		f.causeRepo.On("GetByID", ctx, causeID).Return(&entity.Cause{ID: causeID, Title: "Education Support"}, nil)
		f.donationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Donation")).Return(nil)

		req := validRequest()
		req.CauseID = &causeID
		donation, err := f.service.CreateDonation(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, &causeID, donation.CauseID)
		f.causeRepo.AssertExpectations(t)
	})

	t.Run("should reject an unknown cause", func(t *testing.T) {
		f := newFixture()
		causeID := uint64(99)
		f.causeRepo.On("GetByID", ctx, causeID).Return(nil, errs.ErrCauseNotFound)

		req := validRequest()
		req.CauseID = &causeID
		_, err := f.service.CreateDonation(ctx, req)

		assert.ErrorIs(t, err, errs.ErrCauseNotFound)
		f.donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject invalid submissions without persisting", func(t *testing.T) {
		f := newFixture()

		req := validRequest()
		req.Amount = "-10"
		_, err := f.service.CreateDonation(ctx, req)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)

		req = validRequest()
		req.DonorEmail = ""
		_, err = f.service.CreateDonation(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidDonor)

		f.donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		f := newFixture()
		f.donationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Donation")).Return(errs.ErrDatabaseConnection)

		_, err := f.service.CreateDonation(ctx, validRequest())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestService_AttachOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("should create a gateway order and store its id", func(t *testing.T) {
		f := newFixture()
		donation := pendingDonation(1, nil)
		donation.OrderID = ""

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.gateway.On("CreateOrder", ctx, int64(50000), "INR", mock.AnythingOfType("string")).Return("order_new", nil)
		f.donationRepo.On("AttachOrder", ctx, uint64(1), "order_new", fixedTime).Return(nil)

		orderID, err := f.service.AttachOrder(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, "order_new", orderID)
		f.gateway.AssertExpectations(t)
		f.donationRepo.AssertExpectations(t)
	})

	t.Run("should reject invalid donation id", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.AttachOrder(ctx, 0)

		assert.ErrorIs(t, err, errs.ErrInvalidDonationID)
		f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should not store anything when the gateway fails", func(t *testing.T) {
		f := newFixture()
		donation := pendingDonation(1, nil)

		f.donationRepo.On("GetByID", ctx, uint64(1)).Return(donation, nil)
		f.gateway.On("CreateOrder", ctx, int64(50000), "INR", mock.AnythingOfType("string")).
			Return("", errs.NewGatewayError("create_order", "", errs.ErrGatewayUnavailable))

		_, err := f.service.AttachOrder(ctx, 1)

		assert.Error(t, err)
		assert.True(t, errs.IsGatewayError(err))
		f.donationRepo.AssertNotCalled(t, "AttachOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
