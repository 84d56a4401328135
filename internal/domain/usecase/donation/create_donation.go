package donation

import (
	"context"
	"fmt"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"

	"github.com/google/uuid"
)

// CreateDonationRequest carries the public submission fields
type CreateDonationRequest struct {
	DonorName  string
	DonorEmail string
	DonorPhone string
	Amount     string
	Currency   string
	CauseID    *uint64
	Message    string
}

// CreateDonation validates the submission and persists a new PENDING donation.
// The gateway order is attached in a separate step, since order creation
// depends on the donation amount and currency already being persisted.
func (s *Service) CreateDonation(ctx context.Context, req CreateDonationRequest) (*entity.Donation, error) {
	if req.CauseID != nil {
		if _, err := s.causeRepo.GetByID(ctx, *req.CauseID); err != nil {
			return nil, err
		}
	}

	donation, err := entity.NewDonation(
		req.DonorName,
		req.DonorEmail,
		req.DonorPhone,
		req.Amount,
		req.Currency,
		req.CauseID,
		req.Message,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.Info("Donation created", map[string]any{
		"donation_id": donation.ID,
		"amount":      donation.Amount,
		"currency":    donation.Currency,
	})

	return donation, nil
}

// AttachOrder creates a payment order at the gateway for an existing donation
// and stores the returned order id. Returns the order id for the client's
// checkout flow.
func (s *Service) AttachOrder(ctx context.Context, donationID uint64) (string, error) {
	if donationID == 0 {
		return "", errs.ErrInvalidDonationID
	}

	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return "", err
	}

	receiptID := fmt.Sprintf("donation_%s", uuid.NewString())
	orderID, err := s.gateway.CreateOrder(ctx, donation.AmountMinorUnits, donation.Currency, receiptID)
	if err != nil {
		s.logger.Error("Failed to create gateway order", map[string]any{
			"donation_id": donationID,
			"error":       err.Error(),
		})
		return "", err
	}

	if err := s.donationRepo.AttachOrder(ctx, donationID, orderID, s.timeProvider.Now()); err != nil {
		return "", err
	}

	s.logger.Info("Gateway order attached to donation", map[string]any{
		"donation_id": donationID,
		"order_id":    orderID,
		"receipt_id":  receiptID,
	})

	return orderID, nil
}
