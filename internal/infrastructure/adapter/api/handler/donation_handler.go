package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	donationUseCase "github.com/alphaseam/donorbox-backend/internal/domain/usecase/donation"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DonationHandler handles donation-related HTTP requests
type DonationHandler struct {
	donationService *donationUseCase.Service
	logger          coreport.Logger
}

// NewDonationHandler creates a new donation handler instance
func NewDonationHandler(donationService *donationUseCase.Service, logger coreport.Logger) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		logger:          logger,
	}
}

// Create handles the POST /donate endpoint
func (h *DonationHandler) Create(c *gin.Context) {
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid donation request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), donationUseCase.CreateDonationRequest{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		DonorPhone: req.DonorPhone,
		Amount:     req.Amount,
		Currency:   req.Currency,
		CauseID:    req.CauseID,
		Message:    req.Message,
	})
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to create donation")
		return
	}

	c.JSON(http.StatusCreated, dto.FromDonation(donation))
}

// Get handles the GET /admin/donations/:id endpoint
func (h *DonationHandler) Get(c *gin.Context) {
	donationID, ok := parseDonationID(c)
	if !ok {
		return
	}

	donation, err := h.donationService.GetDonation(c.Request.Context(), donationID)
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to get donation")
		return
	}

	c.JSON(http.StatusOK, dto.FromDonation(donation))
}

// List handles the GET /admin/donations endpoint
func (h *DonationHandler) List(c *gin.Context) {
	donations, err := h.donationService.ListDonations(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to list donations")
		return
	}

	c.JSON(http.StatusOK, dto.FromDonations(donations))
}

// parseDonationID extracts and validates the :id path parameter
func parseDonationID(c *gin.Context) (uint64, bool) {
	idParam := c.Param("id")
	donationID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || donationID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidDonationID),
			Message: "Invalid donation ID format",
		})
		return 0, false
	}
	return donationID, true
}
