package routes

import (
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the service
type Handlers struct {
	Reservation *handler.ReservationHandler
	Place       *handler.PlaceHandler
	User        *handler.UserHandler
	Webhook     *handler.WebhookHandler // Optional
	Health      *handler.HealthHandler
}

// Options tunes route registration
type Options struct {
	ReserveLimiter *middleware.RateLimiter // Optional, guards POST /reservations
	Metrics        gin.HandlerFunc         // Optional, serves /metrics
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, opts Options) {
	router.GET("/health", h.Health.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", opts.Metrics)
	}

	// Reservation lifecycle
	reserve := []gin.HandlerFunc{h.Reservation.Reserve}
	if opts.ReserveLimiter != nil {
		reserve = append([]gin.HandlerFunc{opts.ReserveLimiter.Middleware()}, reserve...)
	}
	router.POST("/reservations", reserve...)
	router.GET("/pay/confirm", h.Reservation.ConfirmPayment)

	// Venue queries
	places := router.Group("/places")
	{
		places.GET("", h.Place.ListPlaces)
		places.GET("/:placeId", h.Place.GetPlace)
		places.GET("/:placeId/availableTimes/:date", h.Place.AvailableTimes)
	}

	// User reservations
	users := router.Group("/users/:userId")
	{
		users.GET("/reservations", h.User.ListReservations)
		users.DELETE("/reservations/:reservationId", h.Reservation.Cancel)
	}

	if h.Webhook != nil {
		router.POST("/webhook", h.Webhook.Receive)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, corsOrigins []string, extra ...gin.HandlerFunc) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(corsOrigins...))
	router.Use(extra...)
}
