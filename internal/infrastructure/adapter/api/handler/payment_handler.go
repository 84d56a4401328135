package handler

import (
	"net/http"

	domainerr "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	donationUseCase "github.com/alphaseam/donorbox-backend/internal/domain/usecase/donation"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the gateway-facing payment endpoints
type PaymentHandler struct {
	donationService *donationUseCase.Service
	logger          coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(donationService *donationUseCase.Service, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		donationService: donationService,
		logger:          logger,
	}
}

// CreateOrder handles the POST /donations/:id/order endpoint. It registers a
// payment order at the gateway and returns the order id the checkout page
// needs to open the payment widget.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	donationID, ok := parseDonationID(c)
	if !ok {
		return
	}

	orderID, err := h.donationService.AttachOrder(c.Request.Context(), donationID)
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to attach gateway order")
		return
	}

	donation, err := h.donationService.GetDonation(c.Request.Context(), donationID)
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to reload donation after order attach")
		return
	}

	c.JSON(http.StatusOK, dto.OrderResponse{
		DonationID: donationID,
		OrderID:    orderID,
		Amount:     donation.Amount,
		Currency:   donation.Currency,
	})
}

// VerifyPayment handles the POST /payment/verify endpoint. A valid signature
// completes the donation through the lifecycle manager; an invalid one is
// rejected without touching stored state.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid payment verification request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	donation, err := h.donationService.VerifyPayment(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondDomainError(c, h.logger, err, "Payment verification failed")
		return
	}

	c.JSON(http.StatusOK, dto.FromDonation(donation))
}
