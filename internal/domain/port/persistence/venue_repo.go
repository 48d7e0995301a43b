package persistence

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// VenueRepository is the read-only venue directory
type VenueRepository interface {
	// GetByID retrieves a venue
	//
	// Possible errors:
	// - ErrVenueNotFound: If the venue does not exist
	// - ErrPersistence: If the database read fails
	GetByID(ctx context.Context, placeID string) (*entity.Venue, error)

	// List returns every venue ordered by id
	List(ctx context.Context) ([]*entity.Venue, error)
}
