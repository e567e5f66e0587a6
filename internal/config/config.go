package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of DATABASE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrMissingAdminEmail is returned when ADMIN_EMAIL is not configured.
var ErrMissingAdminEmail = errors.New("ADMIN_EMAIL is required")

// Config holds the settings read at startup. DatabaseDSN is a file path for
// sqlite and a connection string for postgres.
type Config struct {
	AppPort        string
	Environment    string
	DatabaseDriver string
	DatabaseDSN    string
	DBMaxOpenConns int
	AdminEmail     string
	AdminUsername  string
	RabbitMQURL    string
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

// Load reads configuration from a .env file (if any) and the environment.
// A missing .env file is not an error; containers pass variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper fills a Config from v after applying defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "feedbox.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		Environment:    strings.ToLower(v.GetString("ENVIRONMENT")),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}

	if cfg.AdminEmail == "" {
		return nil, ErrMissingAdminEmail
	}
	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	return cfg, nil
}
