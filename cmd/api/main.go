package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	donationUseCase "github.com/alphaseam/donorbox-backend/internal/domain/usecase/donation"
	notificationUseCase "github.com/alphaseam/donorbox-backend/internal/domain/usecase/notification"
	"github.com/alphaseam/donorbox-backend/internal/domain/usecase/reconciliation"

	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/handler"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/api/routes"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/database"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/database/migration"
	gatewayAdapter "github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/gateway"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/logger"
	notificationAdapter "github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/notification"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/repository"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/scheduler"
	timeProvider "github.com/alphaseam/donorbox-backend/internal/infrastructure/adapter/time"
	"github.com/alphaseam/donorbox-backend/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            parsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay / time.Second),
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	donationRepo := repository.NewDonationRepository(dbManager.DB(), appLogger)
	causeRepo := repository.NewCauseRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Seed default causes into an empty database
	if err := migration.SeedDefaultCauses(context.Background(), causeRepo, tp, appLogger); err != nil {
		appLogger.Error("Failed to seed default causes", map[string]any{
			"error": err.Error(),
		})
	}

	// Payment gateway adapter
	paymentGateway := gatewayAdapter.NewRazorpayGateway(gatewayAdapter.Config{
		KeyID:     cfg.Gateway.KeyID,
		KeySecret: cfg.Gateway.KeySecret,
	}, appLogger)

	// Email sender adapter
	emailSender := notificationAdapter.NewSMTPSender(notificationAdapter.Config{
		Host:       cfg.Email.Host,
		Port:       cfg.Email.Port,
		Username:   cfg.Email.Username,
		Password:   cfg.Email.Password,
		From:       cfg.Email.From,
		OrgAddress: cfg.Email.OrgAddress,
	}, appLogger)

	// Notification dispatcher with the deferred pending re-check
	dispatcher := notificationUseCase.NewDispatcher(
		donationRepo,
		causeRepo,
		emailSender,
		tp,
		appLogger,
		cfg.Monitor.PendingRecheckDelay,
	)

	// Donation lifecycle manager
	donationService := donationUseCase.NewService(
		uow,
		donationRepo,
		causeRepo,
		paymentGateway,
		dispatcher,
		tp,
		appLogger,
		cfg.Email.OrgAddress,
	)

	// Reconciliation engine
	reconciler := reconciliation.NewReconciler(
		donationRepo,
		paymentGateway,
		donationService,
		dispatcher,
		tp,
		appLogger,
		reconciliation.Config{
			RecentWindow:   cfg.Monitor.RecentWindow,
			FollowupMaxAge: cfg.Monitor.FollowupMaxAge,
			FollowupCap:    cfg.Monitor.FollowupCap,
			NotifyAddress:  cfg.Email.OrgAddress,
		},
	)

	// Periodic sweeps
	cronScheduler := scheduler.NewCronScheduler(appLogger)
	if err := cronScheduler.Every(cfg.Monitor.StatusSweepInterval, "status-sweep", func() {
		reconciler.RunStatusSweep(context.Background())
	}); err != nil {
		appLogger.Error("Failed to schedule status sweep", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if err := cronScheduler.Every(cfg.Monitor.FollowupSweepInterval, "followup-sweep", func() {
		reconciler.RunFollowupSweep(context.Background())
	}); err != nil {
		appLogger.Error("Failed to schedule follow-up sweep", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	cronScheduler.Start()

	// Initialize API handlers
	donationHandler := handler.NewDonationHandler(donationService, appLogger)
	paymentHandler := handler.NewPaymentHandler(donationService, appLogger)
	causeHandler := handler.NewCauseHandler(causeRepo, appLogger)
	adminHandler := handler.NewAdminHandler(donationService, reconciler, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, donationHandler, paymentHandler, causeHandler, adminHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the sweeps and wait for any in-flight run to finish
	schedulerCtx := cronScheduler.Stop()
	select {
	case <-schedulerCtx.Done():
	case <-ctx.Done():
		appLogger.Warn("Timed out waiting for running sweeps to finish", nil)
	}

	// Drop armed re-check timers; the status sweep picks the work back up
	dispatcher.Shutdown()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// parsePort converts the configured database port to an int
func parsePort(port string) int {
	p, err := strconv.Atoi(port)
	if err != nil {
		return 5432
	}
	return p
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or DBX_DB_HOST environment variable)")
	}
	if cfg.Database.Port == "" {
		missingConfigs = append(missingConfigs, "database.port (or DBX_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or DBX_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or DBX_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or DBX_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Gateway credentials are required: order creation and signature
	// verification both need them
	if cfg.Gateway.KeyID == "" {
		missingConfigs = append(missingConfigs, "gateway.keyId (or DBX_RAZORPAY_KEY_ID environment variable)")
	}
	if cfg.Gateway.KeySecret == "" {
		missingConfigs = append(missingConfigs, "gateway.keySecret (or DBX_RAZORPAY_KEY_SECRET environment variable)")
	}

	// Mail settings: notifications are best-effort at runtime but the
	// addresses must exist
	if cfg.Email.From == "" {
		missingConfigs = append(missingConfigs, "email.from (or DBX_MAIL_FROM environment variable)")
	}
	if cfg.Email.OrgAddress == "" {
		missingConfigs = append(missingConfigs, "email.orgAddress (or DBX_MAIL_ORG_ADDRESS environment variable)")
	}

	// Monitor configuration
	if cfg.Monitor.StatusSweepInterval == 0 {
		missingConfigs = append(missingConfigs, "monitor.statusSweepInterval")
	}
	if cfg.Monitor.FollowupSweepInterval == 0 {
		missingConfigs = append(missingConfigs, "monitor.followupSweepInterval")
	}
	if cfg.Monitor.FollowupCap < 0 {
		missingConfigs = append(missingConfigs, "monitor.followupCap")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
