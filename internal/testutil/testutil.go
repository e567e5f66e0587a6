package testutil

import (
	"fmt"
	"testing"

	"feedbox/internal/database"
	"feedbox/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDatabase opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test ends.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	// A unique name keeps tests isolated while cache=shared lets every
	// connection of the pool see the same database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("Warning: Failed to close database: %v", err)
		}
	})
	return db
}

// CreateUser inserts a user directly, bypassing the services.
func CreateUser(t *testing.T, db *gorm.DB, username, email, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

// CountFeedbacks returns the number of feedback rows.
func CountFeedbacks(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Feedback{}).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count feedbacks: %v", err)
	}
	return n
}
