package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultVenues is the directory a fresh database starts with
var DefaultVenues = []model.Venue{
	{ID: "place1", Name: "アキバ・スクエア", Price: 500},
	{ID: "place2", Name: "川崎市産業振興会館 1Fホール", Price: 300},
}

// SeedDefaultVenues inserts the default venues, leaving existing rows untouched
func SeedDefaultVenues(ctx context.Context, db *gorm.DB, timeProvider coreport.TimeProvider) error {
	now := timeProvider.Now()

	venues := make([]model.Venue, len(DefaultVenues))
	for i, v := range DefaultVenues {
		v.CreatedAt = now
		v.UpdatedAt = now
		venues[i] = v
	}

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&venues).Error
}
