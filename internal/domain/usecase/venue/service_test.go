package venue

import (
	"context"
	"errors"
	"testing"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	mcore "github.com/amirhossein-jamali/venue-reservation/mocks/port/core"
	mpers "github.com/amirhossein-jamali/venue-reservation/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetVenue(t *testing.T) {
	ctx := context.Background()
	repo := mpers.NewMockVenueRepository(t)
	svc := NewService(repo, mcore.NewMockLogger(t))

	want := &entity.Venue{ID: "place1", Name: "Akiba Square", Price: 500}
	repo.On("GetByID", ctx, "place1").Return(want, nil)
	repo.On("GetByID", ctx, "nowhere").Return(nil, errs.ErrVenueNotFound)

	got, err := svc.GetVenue(ctx, "place1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.GetVenue(ctx, "nowhere")
	assert.ErrorIs(t, err, errs.ErrVenueNotFound)

	_, err = svc.GetVenue(ctx, "")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestListVenues(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mpers.NewMockVenueRepository(t)
		repo.On("List", ctx).Return([]*entity.Venue{{ID: "place1"}, {ID: "place2"}}, nil)

		venues, err := NewService(repo, mcore.NewMockLogger(t)).ListVenues(ctx)

		require.NoError(t, err)
		assert.Len(t, venues, 2)
	})

	t.Run("failure is logged", func(t *testing.T) {
		repo := mpers.NewMockVenueRepository(t)
		logger := mcore.NewMockLogger(t)
		repo.On("List", ctx).Return(nil, errors.New("db down"))
		logger.On("Error", "Failed to list venues", mock.Anything).Once()

		_, err := NewService(repo, logger).ListVenues(ctx)

		assert.Error(t, err)
	})
}
