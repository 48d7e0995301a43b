package dto

import "github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"

// VenueResponse describes a reservable place
type VenueResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// NewVenueResponse converts a domain venue
func NewVenueResponse(v *entity.Venue) VenueResponse {
	return VenueResponse{ID: v.ID, Name: v.Name, Price: v.Price}
}

// VenuesResponse lists every venue
type VenuesResponse struct {
	Places []VenueResponse `json:"places"`
}
