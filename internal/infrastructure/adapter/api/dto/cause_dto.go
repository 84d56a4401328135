package dto

import (
	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
)

// CauseResponse represents a fundraising cause in API responses
type CauseResponse struct {
	ID            uint64  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	TargetAmount  string  `json:"targetAmount"`
	CurrentAmount string  `json:"currentAmount"`
	Progress      float64 `json:"progress"`
}

// FromCause maps a domain cause onto the response shape
func FromCause(c *entity.Cause) CauseResponse {
	return CauseResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		TargetAmount:  c.TargetAmount(),
		CurrentAmount: c.CurrentAmount(),
		Progress:      c.Progress(),
	}
}

// FromCauses maps a slice of causes onto response shapes
func FromCauses(causes []*entity.Cause) []CauseResponse {
	out := make([]CauseResponse, 0, len(causes))
	for _, c := range causes {
		out = append(out, FromCause(c))
	}
	return out
}
