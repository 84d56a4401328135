package handler

import (
	"net/http"

	"github.com/alphaseam/donorbox-backend/internal/domain/entity"
	domainerr "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	donationUseCase "github.com/alphaseam/donorbox-backend/internal/domain/usecase/donation"
	"github.com/alphaseam/donorbox-backend/internal/domain/usecase/reconciliation"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the admin-facing lifecycle endpoints
type AdminHandler struct {
	donationService *donationUseCase.Service
	reconciler      *reconciliation.Reconciler
	logger          coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	donationService *donationUseCase.Service,
	reconciler *reconciliation.Reconciler,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		donationService: donationService,
		reconciler:      reconciler,
		logger:          logger,
	}
}

// UpdateStatus handles the PUT /admin/donations/:id/status endpoint. Manual
// updates go through the same lifecycle entry point as every other source, so
// the cause aggregation and notification rules hold here too.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	donationID, ok := parseDonationID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid status update request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if !entity.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidStatus),
			Message: "Invalid donation status: " + req.Status,
		})
		return
	}

	donation, err := h.donationService.Transition(c.Request.Context(), donationUseCase.TransitionRequest{
		DonationID: donationID,
		NewStatus:  entity.DonationStatus(req.Status),
		PaymentID:  req.PaymentID,
		OrderID:    req.OrderID,
	})
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to update donation status")
		return
	}

	c.JSON(http.StatusOK, dto.FromDonation(donation))
}

// CheckAll handles the POST /admin/donations/check-all endpoint. The scan runs
// in the background; the response only acknowledges that it started.
func (h *AdminHandler) CheckAll(c *gin.Context) {
	h.reconciler.ForceCheckAll()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Donation status check started",
	})
}
