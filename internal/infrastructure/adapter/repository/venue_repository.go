package repository

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// VenueRepository reads the venue directory with GORM
type VenueRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewVenueRepository creates a new VenueRepository instance
func NewVenueRepository(db *gorm.DB, logger coreport.Logger) *VenueRepository {
	return &VenueRepository{
		db:          db,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

// GetByID retrieves a venue
func (r *VenueRepository) GetByID(ctx context.Context, placeID string) (*entity.Venue, error) {
	var venue model.Venue
	if err := r.db.WithContext(ctx).First(&venue, "id = ?", placeID).Error; err != nil {
		mapped := r.errorMapper.MapDatabaseError(err, "get venue", errs.ErrVenueNotFound)
		if mapped != errs.ErrVenueNotFound {
			r.logger.Error("Database error when getting venue", map[string]any{
				"place_id": placeID,
				"error":    err.Error(),
			})
		}
		return nil, mapped
	}
	return modelToEntity(&venue), nil
}

// List returns every venue ordered by id
func (r *VenueRepository) List(ctx context.Context) ([]*entity.Venue, error) {
	var venues []model.Venue
	if err := r.db.WithContext(ctx).Order("id").Find(&venues).Error; err != nil {
		r.logger.Error("Database error when listing venues", map[string]any{
			"error": err.Error(),
		})
		return nil, r.errorMapper.MapDatabaseError(err, "list venues", errs.ErrNotFound)
	}

	out := make([]*entity.Venue, 0, len(venues))
	for i := range venues {
		out = append(out, modelToEntity(&venues[i]))
	}
	return out, nil
}

func modelToEntity(m *model.Venue) *entity.Venue {
	return &entity.Venue{
		ID:    m.ID,
		Name:  m.Name,
		Price: m.Price,
	}
}
