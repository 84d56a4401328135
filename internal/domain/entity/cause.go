package entity

import (
	"time"
)

// Cause is an aggregation target that accumulates completed donation amounts.
// CurrentAmountMinorUnits is mutated only by the donation lifecycle manager,
// only on a transition into COMPLETED, exactly once per donation.
type Cause struct {
	ID                      uint64
	Title                   string
	Description             string
	TargetAmountMinorUnits  int64
	CurrentAmountMinorUnits int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// CurrentAmount returns the running total as a decimal string
func (c *Cause) CurrentAmount() string {
	return MinorUnitsToString(c.CurrentAmountMinorUnits)
}

// TargetAmount returns the fundraising goal as a decimal string
func (c *Cause) TargetAmount() string {
	return MinorUnitsToString(c.TargetAmountMinorUnits)
}

// Progress returns the completion ratio against the target, clamped to [0, 1].
// A cause without a target reports 0.
func (c *Cause) Progress() float64 {
	if c.TargetAmountMinorUnits <= 0 {
		return 0
	}
	ratio := float64(c.CurrentAmountMinorUnits) / float64(c.TargetAmountMinorUnits)
	if ratio > 1 {
		return 1
	}
	return ratio
}
