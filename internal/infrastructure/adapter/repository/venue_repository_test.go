package repository

import (
	"context"
	"testing"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueRepository(t *testing.T) {
	log := logger.NewNoopLogger()
	db := database.NewTestDB(t, log)
	repo := NewVenueRepository(db, log)
	ctx := context.Background()

	t.Run("Get seeded venue", func(t *testing.T) {
		venue, err := repo.GetByID(ctx, "place1")
		require.NoError(t, err)
		assert.Equal(t, "アキバ・スクエア", venue.Name)
		assert.Equal(t, int64(500), venue.Price)
	})

	t.Run("Unknown venue", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "place404")
		assert.ErrorIs(t, err, errs.ErrVenueNotFound)
	})

	t.Run("List venues", func(t *testing.T) {
		venues, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, venues, 2)
		assert.Equal(t, "place1", venues[0].ID)
		assert.Equal(t, "place2", venues[1].ID)
	})
}
