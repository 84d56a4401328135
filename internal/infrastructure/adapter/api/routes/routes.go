package routes

import (
	"net/http"

	coreport "github.com/alphaseam/donorbox-backend/internal/domain/port/core"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/handler"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	donationHandler *handler.DonationHandler,
	paymentHandler *handler.PaymentHandler,
	causeHandler *handler.CauseHandler,
	adminHandler *handler.AdminHandler,
) {
	// Public donation flow
	router.POST("/donate", donationHandler.Create)
	router.POST("/donations/:id/order", paymentHandler.CreateOrder)
	router.POST("/payment/verify", paymentHandler.VerifyPayment)

	// Public cause browsing
	causeRoutes := router.Group("/causes")
	{
		causeRoutes.GET("", causeHandler.List)
		causeRoutes.GET("/:id", causeHandler.Get)
	}

	// Admin surface
	adminRoutes := router.Group("/admin")
	{
		adminRoutes.GET("/donations", donationHandler.List)
		adminRoutes.GET("/donations/:id", donationHandler.Get)
		adminRoutes.PUT("/donations/:id/status", adminHandler.UpdateStatus)
		adminRoutes.POST("/donations/check-all", adminHandler.CheckAll)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
