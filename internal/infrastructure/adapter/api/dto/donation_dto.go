package dto

import (
	"time"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
)

// CreateDonationRequest represents the public donation submission
type CreateDonationRequest struct {
	DonorName  string  `json:"donorName" binding:"required"`
	DonorEmail string  `json:"donorEmail" binding:"required,email"`
	DonorPhone string  `json:"donorPhone"`
	Amount     string  `json:"amount" binding:"required"`
	Currency   string  `json:"currency" binding:"required"`
	CauseID    *uint64 `json:"causeId"`
	Message    string  `json:"message"`
}

// DonationResponse represents a donation in API responses
type DonationResponse struct {
	ID         uint64    `json:"id"`
	DonorName  string    `json:"donorName"`
	DonorEmail string    `json:"donorEmail"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	CauseID    *uint64   `json:"causeId,omitempty"`
	Message    string    `json:"message,omitempty"`
	Status     string    `json:"status"`
	PaymentID  string    `json:"paymentId,omitempty"`
	OrderID    string    `json:"orderId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OrderResponse represents the result of attaching a gateway order
type OrderResponse struct {
	DonationID uint64 `json:"donationId"`
	OrderID    string `json:"orderId"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
}

// VerifyPaymentRequest carries the signed confirmation from the checkout page
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpayOrderId" binding:"required"`
	PaymentID string `json:"razorpayPaymentId" binding:"required"`
	Signature string `json:"razorpaySignature" binding:"required"`
}

// UpdateStatusRequest represents a manual status transition from the admin surface
type UpdateStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
}

// FromDonation maps a domain donation onto the response shape
func FromDonation(d *entity.Donation) DonationResponse {
	return DonationResponse{
		ID:         d.ID,
		DonorName:  d.DonorName,
		DonorEmail: d.DonorEmail,
		Amount:     d.Amount,
		Currency:   d.Currency,
		CauseID:    d.CauseID,
		Message:    d.Message,
		Status:     string(d.Status),
		PaymentID:  d.PaymentID,
		OrderID:    d.OrderID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// FromDonations maps a slice of donations onto response shapes
func FromDonations(donations []*entity.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, FromDonation(d))
	}
	return out
}
