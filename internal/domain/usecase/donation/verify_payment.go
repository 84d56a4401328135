package donation

import (
	"context"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
)

// VerifyPayment handles the synchronous confirmation path: the client calls
// back after checkout with a signed confirmation, the signature is verified
// against the gateway secret, and a valid one feeds the same Transition entry
// point the reconciliation sweep uses.
func (s *Service) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*entity.Donation, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, errs.ErrInvalidRequest
	}

	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		s.logger.Warn("Payment signature rejected", map[string]any{
			"order_id":   orderID,
			"payment_id": paymentID,
		})
		return nil, errs.ErrSignatureVerification
	}

	donation, err := s.donationRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.Transition(ctx, TransitionRequest{
		DonationID: donation.ID,
		NewStatus:  entity.StatusCompleted,
		PaymentID:  paymentID,
		OrderID:    orderID,
	})
}

// GetDonation retrieves a single donation for the admin surface
func (s *Service) GetDonation(ctx context.Context, donationID uint64) (*entity.Donation, error) {
	if donationID == 0 {
		return nil, errs.ErrInvalidDonationID
	}
	return s.donationRepo.GetByID(ctx, donationID)
}

// ListDonations retrieves all donations, newest first
func (s *Service) ListDonations(ctx context.Context) ([]*entity.Donation, error) {
	return s.donationRepo.ListAll(ctx)
}
