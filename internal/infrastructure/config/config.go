package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Gateway     GatewayConfig  `mapstructure:"gateway"`
	Email       EmailConfig    `mapstructure:"email"`
	Monitor     MonitorConfig  `mapstructure:"monitor"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// GatewayConfig contains payment gateway credentials
type GatewayConfig struct {
	KeyID     string `mapstructure:"keyId"`
	KeySecret string `mapstructure:"keySecret"`
}

// EmailConfig contains SMTP settings for notification mail
type EmailConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	OrgAddress string `mapstructure:"orgAddress"`
}

// MonitorConfig contains the sweep and re-check timing settings
type MonitorConfig struct {
	StatusSweepInterval   time.Duration `mapstructure:"statusSweepInterval"`   // minutes
	FollowupSweepInterval time.Duration `mapstructure:"followupSweepInterval"` // minutes
	FollowupMaxAge        time.Duration `mapstructure:"followupMaxAge"`        // minutes
	FollowupCap           int           `mapstructure:"followupCap"`
	PendingRecheckDelay   time.Duration `mapstructure:"pendingRecheckDelay"` // minutes
	RecentWindow          time.Duration `mapstructure:"recentWindow"`        // minutes
}
