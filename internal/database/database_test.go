package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"feedbox/internal/config"
	"feedbox/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Environment:    "production",
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBMaxOpenConns: 1,
	}
}

func TestOpenMigrateClose(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, memoryConfig(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// Running it again must be a no-op.
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Feedback{}))
	assert.NoError(t, Ping(ctx, db))

	require.NoError(t, Close(db))
	assert.Error(t, Ping(ctx, db))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.DatabaseDriver = "oracle"
	_, err := Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"plain file", "feedbox.db", "feedbox.db?_busy_timeout=5000&_txlock=immediate"},
		{"existing query", "file:x?mode=memory", "file:x?mode=memory&_busy_timeout=5000&_txlock=immediate"},
		{"caller timeout kept", "feedbox.db?_busy_timeout=100", "feedbox.db?_busy_timeout=100&_txlock=immediate"},
		{"fully specified", "feedbox.db?_busy_timeout=1&_txlock=deferred", "feedbox.db?_busy_timeout=1&_txlock=deferred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func TestOpenUnreachableFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "missing", "dir", "feedbox.db")
	_, err := Open(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
