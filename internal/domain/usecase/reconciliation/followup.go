package reconciliation

import (
	"context"
)

// RunFollowupSweep reminds donors whose donation has stayed PENDING past the
// configured age. The lifetime cap bounds notification volume for donations
// that never resolve (abandoned checkouts); a capped donation is skipped
// permanently here but can still be resolved by the status sweep at any
// time, which is not subject to the cap. Returns the number of reminders sent.
func (r *Reconciler) RunFollowupSweep(ctx context.Context) int {
	if !r.followupSweepMu.TryLock() {
		r.logger.Warn("Follow-up sweep already running, skipping this firing", nil)
		return 0
	}
	defer r.followupSweepMu.Unlock()

	cutoff := r.timeProvider.Now().Add(-r.cfg.FollowupMaxAge)
	stale, err := r.donationRepo.ListPendingForFollowup(ctx, cutoff, r.cfg.FollowupCap)
	if err != nil {
		r.logger.Error("Failed to list donations for follow-up", map[string]any{
			"error": err.Error(),
		})
		return 0
	}

	sent := 0
	for _, d := range stale {
		// The conditional increment is the cap's enforcement point: a
		// concurrent sweep observing the same donation can never push the
		// counter past the cap or send an extra reminder.
		applied, err := r.donationRepo.IncrementFollowupCount(ctx, d.ID, r.cfg.FollowupCap, r.timeProvider.Now())
		if err != nil {
			r.logger.Error("Failed to increment follow-up counter", map[string]any{
				"donation_id": d.ID,
				"error":       err.Error(),
			})
			continue
		}
		if !applied {
			continue
		}

		d.FollowupEmailCount++
		r.notifier.SendFollowup(d, r.cfg.NotifyAddress)
		sent++

		if d.FollowupEmailCount >= r.cfg.FollowupCap {
			r.logger.Info("Donation reached follow-up cap, no more reminders", map[string]any{
				"donation_id":    d.ID,
				"followup_count": d.FollowupEmailCount,
			})
		}
	}

	r.logger.Info("Follow-up sweep finished", map[string]any{
		"candidates": len(stale),
		"sent":       sent,
	})
	return sent
}
