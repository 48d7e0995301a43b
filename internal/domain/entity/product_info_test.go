package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInfoDates(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	info := ProductInfo{PlaceID: "place1", Year: 2024, Month: 3, Day: 5, Time: "16:00-18:00"}

	assert.Equal(t, "20240305", info.FormattedDate())
	assert.True(t, info.IsOnDate("20240305"))
	assert.False(t, info.IsOnDate("20240306"))

	start, err := info.StartsAt(tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 16, 0, 0, 0, tokyo), start)

	end, err := info.EndsAt(tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 18, 0, 0, 0, tokyo), end)

	info.Time = "broken"
	_, err = info.EndsAt(tokyo)
	assert.ErrorIs(t, err, errs.ErrInvalidTimeSlot)
}

func TestProductInfoEncoding(t *testing.T) {
	info := ProductInfo{PlaceID: "place2", PlaceName: "Hall", Year: 2025, Month: 12, Day: 31, Time: "10:00-12:00"}

	raw, err := info.Encode()
	require.NoError(t, err)
	assert.Contains(t, raw, `"placeId":"place2"`)

	decoded, err := DecodeProductInfo(raw)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)

	_, err = DecodeProductInfo("")
	assert.ErrorIs(t, err, errs.ErrInvalidProductInfo)

	_, err = DecodeProductInfo("{not json")
	assert.ErrorIs(t, err, errs.ErrInvalidProductInfo)
}
