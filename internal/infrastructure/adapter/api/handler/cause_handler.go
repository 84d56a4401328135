package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/alphaseam/donorbox-backend/internal/domain/port/persistence"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CauseHandler handles the public cause endpoints
type CauseHandler struct {
	causeRepo persistence.CauseRepository
	logger    coreport.Logger
}

// NewCauseHandler creates a new cause handler instance
func NewCauseHandler(causeRepo persistence.CauseRepository, logger coreport.Logger) *CauseHandler {
	return &CauseHandler{
		causeRepo: causeRepo,
		logger:    logger,
	}
}

// List handles the GET /causes endpoint
func (h *CauseHandler) List(c *gin.Context) {
	causes, err := h.causeRepo.ListAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to list causes")
		return
	}

	c.JSON(http.StatusOK, dto.FromCauses(causes))
}

// Get handles the GET /causes/:id endpoint
func (h *CauseHandler) Get(c *gin.Context) {
	idParam := c.Param("id")
	causeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || causeID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid cause ID format",
		})
		return
	}

	cause, err := h.causeRepo.GetByID(c.Request.Context(), causeID)
	if err != nil {
		respondDomainError(c, h.logger, err, "Failed to get cause")
		return
	}

	c.JSON(http.StatusOK, dto.FromCause(cause))
}
