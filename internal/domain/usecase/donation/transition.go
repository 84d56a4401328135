package donation

import (
	"context"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	errs "github.com/alphaseam/donorbox-backend/internal/domain/error"
)

// TransitionRequest describes one status change for a donation
type TransitionRequest struct {
	DonationID    uint64
	NewStatus     entity.DonationStatus
	PaymentID     string // overwrites the stored value when non-empty
	OrderID       string // overwrites the stored value when non-empty
	NotifyAddress string // org-facing address; empty falls back to the configured default
}

// Transition applies a status change to a donation. It is the only code path
// that mutates donation status or a cause total, regardless of whether the
// change originated from the signature-verify flow, the reconciliation sweep,
// or an admin action.
//
// Ordering inside one storage transaction: the status write first, then the
// atomic cause increment, the latter only when this call wins the transition
// into COMPLETED and a cause is attached. A donation that is already COMPLETED
// keeps its aggregation untouched on re-application, but the notification is
// still dispatched (admin updates always resend).
//
// Store failures abort the whole operation and suppress the notification;
// notification failures are logged inside the dispatcher and never surface.
func (s *Service) Transition(ctx context.Context, req TransitionRequest) (*entity.Donation, error) {
	if req.DonationID == 0 {
		return nil, errs.ErrInvalidDonationID
	}
	if !entity.IsValidStatus(string(req.NewStatus)) {
		return nil, errs.ErrInvalidStatus
	}

	donation, err := s.donationRepo.GetByID(ctx, req.DonationID)
	if err != nil {
		return nil, err
	}

	previousStatus := donation.Status
	now := s.timeProvider.Now()

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	donationRepo := s.uow.GetDonationRepository(txCtx)

	completionEdge := false
	if req.NewStatus == entity.StatusCompleted {
		// The conditional update's row count is the serialization point:
		// exactly one of any concurrent COMPLETED transitions claims the edge.
		completionEdge, err = donationRepo.ClaimCompletion(txCtx, req.DonationID, req.PaymentID, req.OrderID, now)
	} else {
		err = donationRepo.UpdateStatus(txCtx, req.DonationID, req.NewStatus, req.PaymentID, req.OrderID, now)
	}
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if completionEdge && donation.CauseID != nil {
		causeRepo := s.uow.GetCauseRepository(txCtx)
		if err := causeRepo.AddToCurrentAmount(txCtx, *donation.CauseID, donation.AmountMinorUnits); err != nil {
			_ = s.uow.Rollback(txCtx)
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	donation.ApplyStatus(req.NewStatus, req.PaymentID, req.OrderID, s.timeProvider)

	s.logger.Info("Donation transitioned", map[string]any{
		"donation_id":     donation.ID,
		"previous_status": string(previousStatus),
		"new_status":      string(req.NewStatus),
		"completion_edge": completionEdge,
	})

	// Committed state drives the dispatch; delivery problems stay in the dispatcher
	s.notifier.Dispatch(donation, s.effectiveNotifyAddress(req.NotifyAddress))

	return donation, nil
}
