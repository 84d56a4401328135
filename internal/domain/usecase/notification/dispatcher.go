package notification

import (
	"context"
	"sync"
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	notifport "github.com/alphaseam/donorbox-backend/internal/domain/port/notification"
	"github.com/alphaseam/donorbox-backend/internal/domain/port/persistence"
)

// Dispatcher maps a donation's status to a notification action. Terminal
// statuses notify immediately; PENDING notifies immediately and schedules a
// single deferred re-check that fires only if the donation has resolved in
// the meantime. Delivery is fire-and-forget: sender errors are logged and
// never propagated to the transition that triggered the dispatch.
type Dispatcher struct {
	donationRepo persistence.DonationRepository
	causeRepo    persistence.CauseRepository
	sender       notifport.Sender
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	recheckDelay time.Duration

	mu       sync.Mutex
	rechecks map[uint64]coreport.Timer
	closed   bool
}

// NewDispatcher creates a notification dispatcher
func NewDispatcher(
	donationRepo persistence.DonationRepository,
	causeRepo persistence.CauseRepository,
	sender notifport.Sender,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	recheckDelay time.Duration,
) *Dispatcher {
	return &Dispatcher{
		donationRepo: donationRepo,
		causeRepo:    causeRepo,
		sender:       sender,
		timeProvider: timeProvider,
		logger:       logger,
		recheckDelay: recheckDelay,
		rechecks:     make(map[uint64]coreport.Timer),
	}
}

// Dispatch evaluates the notification policy once for the donation's current
// status. A dispatch for a terminal status cancels any outstanding deferred
// re-check for the same donation, so the resolving transition's own send and
// the deferred send cannot race into a duplicate.
func (d *Dispatcher) Dispatch(donation *entity.Donation, orgAddress string) {
	if donation.Status.IsTerminal() {
		d.cancelRecheck(donation.ID)
		d.sendPair(donation, orgAddress)
		return
	}

	// PENDING: tell the donor the payment is in flight, then check back once
	d.sendPair(donation, orgAddress)
	d.scheduleRecheck(donation.ID, orgAddress)
}

// sendPair sends the donor-facing and organization-facing messages for the
// donation's current status. Each failure is logged and swallowed.
func (d *Dispatcher) sendPair(donation *entity.Donation, orgAddress string) {
	causeTitle := d.lookupCauseTitle(donation)

	subject, body := DonorMessage(donation, causeTitle)
	if err := d.sender.Send(donation.DonorEmail, subject, body); err != nil {
		d.logger.Error("Failed to send donor notification", map[string]any{
			"donation_id": donation.ID,
			"status":      string(donation.Status),
			"address":     donation.DonorEmail,
			"error":       err.Error(),
		})
	}

	subject, body = OrgMessage(donation, causeTitle)
	if err := d.sender.Send(orgAddress, subject, body); err != nil {
		d.logger.Error("Failed to send organization notification", map[string]any{
			"donation_id": donation.ID,
			"status":      string(donation.Status),
			"address":     orgAddress,
			"error":       err.Error(),
		})
	}

	d.logger.Info("Donation notifications dispatched", map[string]any{
		"donation_id": donation.ID,
		"status":      string(donation.Status),
	})
}

// SendFollowup sends the pending-reminder pair for a donation. Used by the
// follow-up sweep, which owns the cap on how often this happens.
func (d *Dispatcher) SendFollowup(donation *entity.Donation, orgAddress string) {
	causeTitle := d.lookupCauseTitle(donation)

	subject, body := FollowupMessage(donation, causeTitle)
	if err := d.sender.Send(donation.DonorEmail, subject, body); err != nil {
		d.logger.Error("Failed to send follow-up notification", map[string]any{
			"donation_id": donation.ID,
			"address":     donation.DonorEmail,
			"error":       err.Error(),
		})
		return
	}

	d.logger.Info("Follow-up notification sent", map[string]any{
		"donation_id":    donation.ID,
		"followup_count": donation.FollowupEmailCount,
	})
}

// scheduleRecheck arms the one-shot deferred re-check for a PENDING dispatch.
// A newer PENDING dispatch for the same donation replaces the older timer.
func (d *Dispatcher) scheduleRecheck(donationID uint64, orgAddress string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if existing, ok := d.rechecks[donationID]; ok {
		existing.Stop()
	}
	d.rechecks[donationID] = d.timeProvider.AfterFunc(d.recheckDelay, func() {
		d.runRecheck(donationID, orgAddress)
	})
}

// runRecheck re-reads the donation when the deferred timer fires. If the
// status moved off PENDING, the notification for the new status is sent; if
// it is still PENDING nothing happens; the periodic follow-up sweep owns
// long-term pending reminders.
func (d *Dispatcher) runRecheck(donationID uint64, orgAddress string) {
	d.mu.Lock()
	delete(d.rechecks, donationID)
	d.mu.Unlock()

	donation, err := d.donationRepo.GetByID(context.Background(), donationID)
	if err != nil {
		d.logger.Error("Deferred re-check failed to load donation", map[string]any{
			"donation_id": donationID,
			"error":       err.Error(),
		})
		return
	}

	if donation.Status == entity.StatusPending {
		d.logger.Debug("Deferred re-check: donation still pending, no notification", map[string]any{
			"donation_id": donationID,
		})
		return
	}

	d.sendPair(donation, orgAddress)
}

// cancelRecheck stops the outstanding deferred re-check for a donation, if any
func (d *Dispatcher) cancelRecheck(donationID uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.rechecks[donationID]; ok {
		timer.Stop()
		delete(d.rechecks, donationID)
	}
}

// lookupCauseTitle resolves the cause title for message bodies, best-effort
func (d *Dispatcher) lookupCauseTitle(donation *entity.Donation) string {
	if donation.CauseID == nil {
		return ""
	}
	cause, err := d.causeRepo.GetByID(context.Background(), *donation.CauseID)
	if err != nil {
		return ""
	}
	return cause.Title
}

// PendingRecheckCount reports the number of armed deferred re-checks
func (d *Dispatcher) PendingRecheckCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rechecks)
}

// Shutdown stops all outstanding deferred re-check timers. The periodic
// status sweep remains the durable backstop for anything cancelled here.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for id, timer := range d.rechecks {
		timer.Stop()
		delete(d.rechecks, id)
	}
	d.logger.Info("Notification dispatcher shut down", nil)
}
