package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/memory"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	rtime "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/time"
	mcore "github.com/amirhossein-jamali/venue-reservation/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedStoreLogsSlowOperations(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	clock := mcore.NewMockTimeProvider(t)
	clock.On("Now").Return(start).Once()
	clock.On("Now").Return(start.Add(250 * time.Millisecond)).Once()

	log := mcore.NewMockLogger(t)
	log.On("Warn", "Slow store operation detected", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["operation"] == "smembers" && fields["duration_ms"] == int64(250)
	})).Once()

	inner := memory.NewStore(rtime.NewRealTimeProvider(time.UTC))
	s := NewInstrumentedStore(inner, log, clock, 0)

	members, err := s.SMembers(context.Background(), "place:p1:reservations")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestInstrumentedStoreDoesNotWarnOnConflict(t *testing.T) {
	clock := rtime.NewRealTimeProvider(time.UTC)
	inner := memory.NewStore(clock)
	s := NewInstrumentedStore(inner, mcore.NewMockLogger(t), clock, time.Hour)
	ctx := context.Background()

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		require.NoError(t, inner.Watch(ctx, func(other persistence.KVTx) error {
			return other.Exec(ctx, func(b persistence.KVBatch) error {
				b.SAdd("k", "x")
				return nil
			})
		}))
		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.SAdd("k", "y")
			return nil
		})
	}, "k")

	assert.ErrorIs(t, err, persistence.ErrTxConflict)
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "etcd"}, logger.NewNoopLogger(), rtime.NewRealTimeProvider(nil))
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestNewMemoryDriver(t *testing.T) {
	s, err := New(context.Background(), Config{Driver: DriverMemory}, logger.NewNoopLogger(), rtime.NewRealTimeProvider(nil))
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}
