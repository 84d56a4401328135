package reconciliation

import (
	"context"
	"sync"
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	gatewayport "github.com/alphaseam/donorbox-backend/internal/domain/port/gateway"
	"github.com/alphaseam/donorbox-backend/internal/domain/port/persistence"
	donationUseCase "github.com/alphaseam/donorbox-backend/internal/domain/usecase/donation"
)

// Transitioner is the slice of the lifecycle manager the sweeps need: every
// status change discovered at the gateway goes through the same entry point
// as the synchronous verification path.
type Transitioner interface {
	Transition(ctx context.Context, req donationUseCase.TransitionRequest) (*entity.Donation, error)
}

// FollowupNotifier sends the pending-reminder for the follow-up sweep
type FollowupNotifier interface {
	SendFollowup(donation *entity.Donation, orgAddress string)
}

// Config carries the sweep tuning knobs
type Config struct {
	// RecentWindow bounds the belt-and-braces cross-check of non-pending donations
	RecentWindow time.Duration
	// FollowupMaxAge is how long a donation must stay PENDING before reminders start
	FollowupMaxAge time.Duration
	// FollowupCap is the lifetime maximum of reminder emails per donation
	FollowupCap int
	// NotifyAddress is the org-facing address used for sweep-triggered notifications
	NotifyAddress string
}

// Reconciler closes the gap between "gateway says paid" and "local record
// says pending". It never mutates state itself: observed differences are fed
// into the lifecycle manager's Transition.
type Reconciler struct {
	donationRepo persistence.DonationRepository
	gateway      gatewayport.PaymentGateway
	lifecycle    Transitioner
	notifier     FollowupNotifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config

	// Non-reentrant guards: overlapping sweeps of the same kind could both
	// observe the same PENDING donation and double-dispatch.
	statusSweepMu   sync.Mutex
	followupSweepMu sync.Mutex
}

// NewReconciler creates the reconciliation engine
func NewReconciler(
	donationRepo persistence.DonationRepository,
	gateway gatewayport.PaymentGateway,
	lifecycle Transitioner,
	notifier FollowupNotifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Reconciler {
	return &Reconciler{
		donationRepo: donationRepo,
		gateway:      gateway,
		lifecycle:    lifecycle,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// RunStatusSweep polls the gateway for every donation that might have moved
// and feeds observed changes into the lifecycle manager. Failures are
// isolated per item: one unreachable order never aborts the rest of the
// batch. Returns the number of donations transitioned.
func (r *Reconciler) RunStatusSweep(ctx context.Context) int {
	if !r.statusSweepMu.TryLock() {
		r.logger.Warn("Status sweep already running, skipping this firing", nil)
		return 0
	}
	defer r.statusSweepMu.Unlock()

	r.logger.Info("Starting donation status sweep", nil)

	candidates := r.collectCandidates(ctx)
	updated := 0
	for _, d := range candidates {
		if r.checkDonation(ctx, d) {
			updated++
		}
	}

	r.logger.Info("Donation status sweep finished", map[string]any{
		"candidates": len(candidates),
		"updated":    updated,
	})
	return updated
}

// collectCandidates gathers PENDING donations with an order id plus all
// donations created inside the recent window, deduplicated by id. The recent
// set cross-checks donations whose local status already changed but whose
// gateway view should still be compared.
func (r *Reconciler) collectCandidates(ctx context.Context) []*entity.Donation {
	seen := make(map[uint64]bool)
	var candidates []*entity.Donation

	pending, err := r.donationRepo.ListPendingWithOrder(ctx)
	if err != nil {
		r.logger.Error("Failed to list pending donations", map[string]any{
			"error": err.Error(),
		})
	}
	for _, d := range pending {
		if !seen[d.ID] {
			seen[d.ID] = true
			candidates = append(candidates, d)
		}
	}

	cutoff := r.timeProvider.Now().Add(-r.cfg.RecentWindow)
	recent, err := r.donationRepo.ListCreatedAfter(ctx, cutoff)
	if err != nil {
		r.logger.Error("Failed to list recent donations", map[string]any{
			"error": err.Error(),
		})
	}
	for _, d := range recent {
		if d.HasOrder() && !seen[d.ID] {
			seen[d.ID] = true
			candidates = append(candidates, d)
		}
	}

	return candidates
}

// checkDonation compares one donation against the gateway and applies any
// difference through the lifecycle manager. Returns true if a transition was
// applied. An unchanged status short-circuits: no store write, no dispatch.
func (r *Reconciler) checkDonation(ctx context.Context, d *entity.Donation) bool {
	if !d.HasOrder() {
		return false
	}

	gatewayStatus, err := r.gateway.GetOrderStatus(ctx, d.OrderID)
	if err != nil {
		r.logger.Error("Failed to fetch gateway status for donation", map[string]any{
			"donation_id": d.ID,
			"order_id":    d.OrderID,
			"error":       err.Error(),
		})
		return false
	}

	mapped := entity.StatusFromGateway(gatewayStatus)
	if mapped == d.Status {
		r.logger.Debug("Donation status unchanged at gateway", map[string]any{
			"donation_id":    d.ID,
			"gateway_status": gatewayStatus,
		})
		return false
	}

	_, err = r.lifecycle.Transition(ctx, donationUseCase.TransitionRequest{
		DonationID:    d.ID,
		NewStatus:     mapped,
		PaymentID:     d.PaymentID,
		OrderID:       d.OrderID,
		NotifyAddress: r.cfg.NotifyAddress,
	})
	if err != nil {
		r.logger.Error("Failed to transition donation from sweep", map[string]any{
			"donation_id": d.ID,
			"new_status":  string(mapped),
			"error":       err.Error(),
		})
		return false
	}

	r.logger.Info("Donation reconciled against gateway", map[string]any{
		"donation_id":     d.ID,
		"previous_status": string(d.Status),
		"new_status":      string(mapped),
	})
	return true
}

// ForceCheckAll runs the status-sweep logic over the entire donation set.
// Triggered on demand from the admin surface; runs asynchronously so the
// caller does not block on a full gateway scan.
func (r *Reconciler) ForceCheckAll() {
	r.logger.Info("Force check of all donations requested", nil)

	go func() {
		ctx := context.Background()

		if !r.statusSweepMu.TryLock() {
			r.logger.Warn("Status sweep already running, force check skipped", nil)
			return
		}
		defer r.statusSweepMu.Unlock()

		all, err := r.donationRepo.ListAll(ctx)
		if err != nil {
			r.logger.Error("Force check failed to list donations", map[string]any{
				"error": err.Error(),
			})
			return
		}

		updated := 0
		for _, d := range all {
			if r.checkDonation(ctx, d) {
				updated++
			}
		}

		r.logger.Info("Force check of all donations finished", map[string]any{
			"checked": len(all),
			"updated": updated,
		})
	}()
}
