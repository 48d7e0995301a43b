package database

import (
	"context"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory SQLite database private to the test
func NewTestDB(t *testing.T, logger coreport.Logger) *gorm.DB {
	t.Helper()

	config := &Config{
		Driver:          DriverSQLite,
		Path:            "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Hour,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
	}

	manager := NewManager(config, logger, timeprovider.NewRealTimeProvider(time.UTC))
	db, err := manager.Connect(context.Background())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close() })

	if err := manager.MigrationManager().MigrateAll(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
