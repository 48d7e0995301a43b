package usecase

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// AvailabilityUseCase answers slot and listing queries
type AvailabilityUseCase interface {
	// AvailableSlots returns the free daily periods of a venue on a yyyyMMdd date,
	// in schedule order
	AvailableSlots(ctx context.Context, placeID string, date string) ([]string, error)

	// UserReservations returns the user's reservations that have not ended yet,
	// optionally restricted to one venue, ordered by start time
	UserReservations(ctx context.Context, userID string, placeID string) ([]*entity.Reservation, error)
}

// VenueUseCase exposes the venue directory
type VenueUseCase interface {
	GetVenue(ctx context.Context, placeID string) (*entity.Venue, error)
	ListVenues(ctx context.Context) ([]*entity.Venue, error)
}
