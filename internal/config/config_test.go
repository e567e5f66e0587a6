package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	v.Set("ADMIN_EMAIL", "admin@oz.test")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "feedbox.db", cfg.DatabaseDSN)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.IsDevelopment())
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("ADMIN_EMAIL", "wizard@oz.test")
	v.Set("ADMIN_USERNAME", "wizard")
	v.Set("DATABASE_DRIVER", "Postgres")
	v.Set("ENVIRONMENT", "production")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "wizard", cfg.AdminUsername)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.False(t, cfg.IsDevelopment())
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "env@oz.test")
	t.Setenv("APP_PORT", ":9090")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "env@oz.test", cfg.AdminEmail)
	assert.Equal(t, ":9090", cfg.AppPort)
}

func TestFromViperRequiresAdminEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	_, err := FromViper(viper.New())
	assert.ErrorIs(t, err, ErrMissingAdminEmail)
}

func TestFromViperRejectsUnknownDriver(t *testing.T) {
	v := viper.New()
	v.Set("ADMIN_EMAIL", "admin@oz.test")
	v.Set("DATABASE_DRIVER", "mysql")

	_, err := FromViper(v)
	assert.Error(t, err)
}
