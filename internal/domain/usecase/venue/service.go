package venue

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
)

// Service exposes the venue directory
type Service struct {
	venues persistence.VenueRepository
	logger coreport.Logger
}

var _ usecase.VenueUseCase = (*Service)(nil)

// NewService creates a new venue service
func NewService(venues persistence.VenueRepository, logger coreport.Logger) *Service {
	return &Service{venues: venues, logger: logger}
}

// GetVenue returns a single venue
func (s *Service) GetVenue(ctx context.Context, placeID string) (*entity.Venue, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, errs.ErrInvalidRequest
	}
	return s.venues.GetByID(ctx, placeID)
}

// ListVenues returns every venue
func (s *Service) ListVenues(ctx context.Context) ([]*entity.Venue, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list venues", map[string]any{"error": err.Error()})
		return nil, err
	}
	return venues, nil
}
