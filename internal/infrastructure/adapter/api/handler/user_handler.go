package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user-scoped queries
type UserHandler struct {
	availability usecase.AvailabilityUseCase
	logger       coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(availability usecase.AvailabilityUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{availability: availability, logger: logger}
}

// ListReservations handles GET /users/:userId/reservations?placeId=
func (h *UserHandler) ListReservations(c *gin.Context) {
	list, err := h.availability.UserReservations(c.Request.Context(), c.Param("userId"), c.Query("placeId"))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReservationsResponse(list))
}
