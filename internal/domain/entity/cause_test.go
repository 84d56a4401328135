package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCauseAmounts(t *testing.T) {
	cause := &Cause{
		TargetAmountMinorUnits:  10000000,
		CurrentAmountMinorUnits: 251050,
	}

	assert.Equal(t, "100000.00", cause.TargetAmount())
	assert.Equal(t, "2510.50", cause.CurrentAmount())
}

func TestCauseProgress(t *testing.T) {
	testCases := []struct {
		name     string
		target   int64
		current  int64
		expected float64
	}{
		{"empty cause", 10000, 0, 0},
		{"halfway", 10000, 5000, 0.5},
		{"complete", 10000, 10000, 1},
		{"overfunded clamps to one", 10000, 15000, 1},
		{"no target reports zero", 0, 5000, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cause := &Cause{
				TargetAmountMinorUnits:  tc.target,
				CurrentAmountMinorUnits: tc.current,
			}
			assert.InDelta(t, tc.expected, cause.Progress(), 0.0001)
		})
	}
}
