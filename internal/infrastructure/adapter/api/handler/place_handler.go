package handler

import (
	"net/http"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PlaceHandler handles venue and availability queries
type PlaceHandler struct {
	venues       usecase.VenueUseCase
	availability usecase.AvailabilityUseCase
	logger       coreport.Logger
}

// NewPlaceHandler creates a new place handler instance
func NewPlaceHandler(venues usecase.VenueUseCase, availability usecase.AvailabilityUseCase, logger coreport.Logger) *PlaceHandler {
	return &PlaceHandler{venues: venues, availability: availability, logger: logger}
}

// ListPlaces handles GET /places
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	venues, err := h.venues.ListVenues(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	resp := dto.VenuesResponse{Places: make([]dto.VenueResponse, 0, len(venues))}
	for _, v := range venues {
		resp.Places = append(resp.Places, dto.NewVenueResponse(v))
	}
	c.JSON(http.StatusOK, resp)
}

// GetPlace handles GET /places/:placeId
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	venue, err := h.venues.GetVenue(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		// an unknown id in the path is a missing resource here, not a bad reservation request
		if errs.IsNotFoundError(err) {
			respondError(c, h.logger, http.StatusNotFound, err, msgNotFound)
			return
		}
		respondDomainError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewVenueResponse(venue))
}

// AvailableTimes handles GET /places/:placeId/availableTimes/:date, date being yyyyMMdd
func (h *PlaceHandler) AvailableTimes(c *gin.Context) {
	slots, err := h.availability.AvailableSlots(c.Request.Context(), c.Param("placeId"), c.Param("date"))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailableTimesResponse{AvailableTimes: slots})
}
