package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/alphaseam/donorbox-backend/internal/domain/error"
	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondDomainError maps domain errors onto HTTP responses. Validation
// failures and bad signatures are client errors, unreachable dependencies are
// 502, everything unrecognized is a 500 with a generic message.
func respondDomainError(c *gin.Context, logger coreport.Logger, err error, logMessage string) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domainerr.IsNotFoundError(err):
		statusCode = http.StatusNotFound
		message = err.Error()
	case domainerr.IsSignatureError(err):
		statusCode = http.StatusBadRequest
		message = "Payment verification failed"
	case domainerr.IsGatewayError(err):
		statusCode = http.StatusBadGateway
		message = "Payment gateway unavailable"
	case isValidationError(err):
		statusCode = http.StatusBadRequest
		message = err.Error()
	}

	logger.Error(logMessage, map[string]any{
		"status": statusCode,
		"error":  err.Error(),
	})

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// isValidationError reports whether the error comes from request validation
func isValidationError(err error) bool {
	return errors.Is(err, domainerr.ErrInvalidAmount) ||
		errors.Is(err, domainerr.ErrNegativeAmount) ||
		errors.Is(err, domainerr.ErrAmountOverflow) ||
		errors.Is(err, domainerr.ErrInvalidDonationID) ||
		errors.Is(err, domainerr.ErrInvalidCurrency) ||
		errors.Is(err, domainerr.ErrInvalidStatus) ||
		errors.Is(err, domainerr.ErrInvalidDonor) ||
		errors.Is(err, domainerr.ErrInvalidRequest) ||
		errors.Is(err, domainerr.ErrMissingOrderID)
}
