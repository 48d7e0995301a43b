package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/middleware"
	mcore "github.com/amirhossein-jamali/venue-reservation/mocks/port/core"
	muse "github.com/amirhossein-jamali/venue-reservation/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(t *testing.T, withWebhook bool, opts Options) (*gin.Engine, *muse.MockVenueUseCase) {
	gin.SetMode(gin.TestMode)

	logger := mcore.NewMockLogger(t)
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		logger.On(level, mock.Anything, mock.Anything).Maybe()
	}

	reservations := muse.NewMockReservationUseCase(t)
	availability := muse.NewMockAvailabilityUseCase(t)
	venues := muse.NewMockVenueUseCase(t)

	h := Handlers{
		Reservation: handler.NewReservationHandler(reservations, logger),
		Place:       handler.NewPlaceHandler(venues, availability, logger),
		User:        handler.NewUserHandler(availability, logger),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"store": handler.PingFunc(func(context.Context) error { return nil }),
		}, 0),
	}
	if withWebhook {
		h.Webhook = handler.NewWebhookHandler(muse.NewMockChatUseCase(t), func([]byte, string) bool { return false }, logger)
	}

	router := gin.New()
	SetupMiddlewares(router, logger, []string{"https://app.example.com"})
	SetupRoutes(router, h, opts)
	return router, venues
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader("{}")))
	return w
}

func TestSetupRoutes(t *testing.T) {
	router, venues := newRouter(t, false, Options{})
	venues.On("ListVenues", mock.Anything).Return([]*entity.Venue{}, nil)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/places").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/webhook").Code)

	w := serve(router, http.MethodGet, "/health")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestSetupRoutesOptional(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimit{RequestsPerMinute: 1, Burst: 1})
	router, _ := newRouter(t, true, Options{
		ReserveLimiter: limiter,
		Metrics:        func(c *gin.Context) { c.String(http.StatusOK, "metrics") },
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPost, "/webhook").Code)

	// an empty body fails validation without reaching the use case
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/reservations").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/reservations").Code)
}
