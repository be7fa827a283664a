package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// BasePath mounts every route under a prefix such as "/api".
	// Empty mounts routes at the root.
	BasePath string `mapstructure:"base_path" validate:"omitempty,startswith=/,endsnotwith=/"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// LogJournal also sends logs to the systemd journal when it is reachable.
	LogJournal bool `mapstructure:"log_journal"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`

	// URL is the PostgreSQL connection string. Required for the postgres driver.
	URL string `mapstructure:"url" validate:"omitempty,url"`

	// Path is the SQLite database file. Required for the sqlite driver.
	Path string `mapstructure:"path"`

	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`

	// AutoMigrate applies pending PostgreSQL migrations at startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// Identity modes for bearer tokens.
const (
	AuthModeOpaque = "opaque"
	AuthModeJWT    = "jwt"
)

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	// Mode selects how bearer tokens become identities. "opaque" uses the
	// token itself; "jwt" verifies an HS256 token and uses its subject.
	Mode string `mapstructure:"mode" validate:"required,oneof=opaque jwt"`

	// JWTSecret is required, and at least 32 characters, when Mode is "jwt".
	JWTSecret string `mapstructure:"jwt_secret"`

	// ClockSkew is the leeway allowed when checking token time claims.
	ClockSkew time.Duration `mapstructure:"clock_skew" validate:"gte=0"`
}
