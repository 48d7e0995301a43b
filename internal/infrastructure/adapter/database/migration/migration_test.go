package migration

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/time"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMigrateAll(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mgr := NewMigrationManager(db, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider(time.UTC))

	require.NoError(t, mgr.MigrateAll(ctx))

	version, err := mgr.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	var venues []model.Venue
	require.NoError(t, db.Order("id").Find(&venues).Error)
	require.Len(t, venues, 2)
	assert.Equal(t, "place1", venues[0].ID)
	assert.Equal(t, int64(500), venues[0].Price)
	assert.Equal(t, int64(300), venues[1].Price)

	// a second run is a no-op
	require.NoError(t, mgr.MigrateAll(ctx))
	var count int64
	require.NoError(t, db.Model(&model.SchemaVersion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeedDefaultVenuesKeepsExistingRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	clock := timeprovider.NewRealTimeProvider(time.UTC)
	require.NoError(t, db.AutoMigrate(&model.Venue{}))

	custom := model.Venue{ID: "place1", Name: "Renamed", Price: 800, CreatedAt: clock.Now(), UpdatedAt: clock.Now()}
	require.NoError(t, db.Create(&custom).Error)

	require.NoError(t, SeedDefaultVenues(ctx, db, clock))

	var got model.Venue
	require.NoError(t, db.First(&got, "id = ?", "place1").Error)
	assert.Equal(t, "Renamed", got.Name)

	var count int64
	require.NoError(t, db.Model(&model.Venue{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
