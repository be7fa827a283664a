package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TODO"

// ConfigFileEnv names the environment variable holding an optional config file path.
const ConfigFileEnv = "TODO_CONFIG_FILE"

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("configuration validation failed")

// minJWTSecretLength is the shortest HS256 secret accepted in jwt mode.
const minJWTSecretLength = 32

// Load reads configuration from defaults, the file named by TODO_CONFIG_FILE
// (if set), and environment variables. Environment variables take precedence
// over values from the config file.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(ConfigFileEnv))
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file. Files ending in .jsonc may contain comments and trailing commas.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// DATABASE_URL is the conventional variable for hosted PostgreSQL.
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.log_journal", false)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "todo.db")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.mode", AuthModeOpaque)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.clock_skew", 2*time.Minute)
}

func readConfigFile(v *viper.Viper, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Validate checks struct tags and the cross-field rules between driver and
// URL/path and between auth mode and secret.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(validateDatabase, DatabaseConfig{})
	validate.RegisterStructValidation(validateAuth, AuthConfig{})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func validateDatabase(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	switch db.Driver {
	case DriverPostgres:
		if db.URL == "" {
			sl.ReportError(db.URL, "URL", "url", "required_if", "driver postgres")
		}
	case DriverSQLite:
		if db.Path == "" {
			sl.ReportError(db.Path, "Path", "path", "required_if", "driver sqlite")
		}
	}
}

func validateAuth(sl validator.StructLevel) {
	auth := sl.Current().Interface().(AuthConfig)
	if auth.Mode == AuthModeJWT && len(auth.JWTSecret) < minJWTSecretLength {
		sl.ReportError(auth.JWTSecret, "JWTSecret", "jwt_secret", "min", fmt.Sprint(minJWTSecretLength))
	}
}
