package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		// Don't return error, just log it or continue
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Set environment variables to override config
	v.SetEnvPrefix("DBX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Process environment variable overrides for sensitive values
	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	// Convert time.Duration fields from their raw values
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil // Successfully loaded .env file
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	// Non-critical server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	// Database defaults for non-sensitive settings
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 5) // minutes
	v.SetDefault("database.connMaxIdleTime", 5) // minutes
	v.SetDefault("database.queryTimeout", 10)   // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 5) // seconds

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	// Monitor defaults, expressed in minutes
	v.SetDefault("monitor.statusSweepInterval", 5)
	v.SetDefault("monitor.followupSweepInterval", 30)
	v.SetDefault("monitor.followupMaxAge", 120)
	v.SetDefault("monitor.followupCap", 2)
	v.SetDefault("monitor.pendingRecheckDelay", 10)
	v.SetDefault("monitor.recentWindow", 1440)

	// Email defaults
	v.SetDefault("email.port", 587)
}

// getEnvironment determines the environment to use based on DBX_ENV environment variable
func getEnvironment() string {
	env := os.Getenv("DBX_ENV")
	if env == "" {
		// Default to development if not specified
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// This function prioritizes environment variables over configuration file values
func processEnvOverrides(v *viper.Viper) {
	// Database sensitive information
	if dbHost := os.Getenv("DBX_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("DBX_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("DBX_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("DBX_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("DBX_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("DBX_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	// Database performance settings
	if maxOpenConns := getEnvInt("DBX_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("DBX_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if queryTimeout := getEnvInt("DBX_DB_QUERY_TIMEOUT_SECONDS", 0); queryTimeout > 0 {
		v.Set("database.queryTimeout", queryTimeout)
	}

	// Server settings
	if serverHost := os.Getenv("DBX_SERVER_HOST"); serverHost != "" {
		v.Set("server.host", serverHost)
	}
	if serverPort := os.Getenv("DBX_SERVER_PORT"); serverPort != "" {
		v.Set("server.port", serverPort)
	}

	// Logger settings
	if logLevel := os.Getenv("DBX_LOGGER_LEVEL"); logLevel != "" {
		v.Set("logger.level", logLevel)
	}

	// Gateway credentials are only ever read from the environment
	if keyID := os.Getenv("DBX_RAZORPAY_KEY_ID"); keyID != "" {
		v.Set("gateway.keyId", keyID)
	}
	if keySecret := os.Getenv("DBX_RAZORPAY_KEY_SECRET"); keySecret != "" {
		v.Set("gateway.keySecret", keySecret)
	}

	// Mail credentials
	if mailHost := os.Getenv("DBX_MAIL_HOST"); mailHost != "" {
		v.Set("email.host", mailHost)
	}
	if mailPort := getEnvInt("DBX_MAIL_PORT", 0); mailPort > 0 {
		v.Set("email.port", mailPort)
	}
	if mailUser := os.Getenv("DBX_MAIL_USERNAME"); mailUser != "" {
		v.Set("email.username", mailUser)
	}
	if mailPass := os.Getenv("DBX_MAIL_PASSWORD"); mailPass != "" {
		v.Set("email.password", mailPass)
	}
	if mailFrom := os.Getenv("DBX_MAIL_FROM"); mailFrom != "" {
		v.Set("email.from", mailFrom)
	}
	if orgAddress := os.Getenv("DBX_MAIL_ORG_ADDRESS"); orgAddress != "" {
		v.Set("email.orgAddress", orgAddress)
	}

	// Monitor settings
	if sweepInterval := getEnvInt("DBX_MONITOR_STATUS_SWEEP_MINUTES", 0); sweepInterval > 0 {
		v.Set("monitor.statusSweepInterval", sweepInterval)
	}
	if followupInterval := getEnvInt("DBX_MONITOR_FOLLOWUP_SWEEP_MINUTES", 0); followupInterval > 0 {
		v.Set("monitor.followupSweepInterval", followupInterval)
	}
	if followupCap := getEnvInt("DBX_MONITOR_FOLLOWUP_CAP", -1); followupCap >= 0 {
		v.Set("monitor.followupCap", followupCap)
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	// Convert seconds to time.Duration
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	// Convert minutes to time.Duration
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	// Convert seconds to time.Duration
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	// Monitor intervals are configured in minutes
	config.Monitor.StatusSweepInterval = time.Duration(config.Monitor.StatusSweepInterval) * time.Minute
	config.Monitor.FollowupSweepInterval = time.Duration(config.Monitor.FollowupSweepInterval) * time.Minute
	config.Monitor.FollowupMaxAge = time.Duration(config.Monitor.FollowupMaxAge) * time.Minute
	config.Monitor.PendingRecheckDelay = time.Duration(config.Monitor.PendingRecheckDelay) * time.Minute
	config.Monitor.RecentWindow = time.Duration(config.Monitor.RecentWindow) * time.Minute
}
