package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{InMemory: true}, logger.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func exec(ctx context.Context, s *Store, fn func(b persistence.KVBatch), keys ...string) error {
	return s.Watch(ctx, func(tx persistence.KVTx) error {
		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			fn(b)
			return nil
		})
	}, keys...)
}

func TestStoreBatch(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := exec(ctx, s, func(b persistence.KVBatch) {
		b.HSet("reservation:r1", map[string]string{"reservedBy": "U1"})
		b.HSet("reservation:r1", map[string]string{"productInfo": "{}"})
		b.SAdd("user:U1:reservations", "r1", "r2")
		b.SRem("user:U1:reservations", "r2")
		b.SAdd("place:p1:reservations", "r1")
	}, "user:U1:reservations", "place:p1:reservations")
	require.NoError(t, err)

	h, err := s.HGetAll(ctx, "reservation:r1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"reservedBy": "U1", "productInfo": "{}"}, h)

	members, err := s.SMembers(ctx, "user:U1:reservations")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, members)

	err = exec(ctx, s, func(b persistence.KVBatch) {
		b.Del("reservation:r1")
		b.SRem("user:U1:reservations", "r1")
		b.SRem("place:p1:reservations", "r1")
	}, "reservation:r1")
	require.NoError(t, err)

	h, _ = s.HGetAll(ctx, "reservation:r1")
	assert.Empty(t, h)
	members, _ = s.SMembers(ctx, "place:p1:reservations")
	assert.Empty(t, members)
}

func TestStoreExpire(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, exec(ctx, s, func(b persistence.KVBatch) {
		b.HSet("transaction:tx1", map[string]string{"userId": "U1"})
		b.Expire("transaction:tx1", time.Second)
	}))

	h, _ := s.HGetAll(ctx, "transaction:tx1")
	assert.NotEmpty(t, h)

	// badger TTLs have second granularity
	assert.Eventually(t, func() bool {
		h, err := s.HGetAll(ctx, "transaction:tx1")
		return err == nil && len(h) == 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestStoreWatchConflict(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		require.NoError(t, exec(ctx, s, func(b persistence.KVBatch) {
			b.SAdd("place:p1:reservations", "other")
		}))

		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.SAdd("place:p1:reservations", "mine")
			return nil
		})
	}, "place:p1:reservations")
	assert.ErrorIs(t, err, persistence.ErrTxConflict)

	members, _ := s.SMembers(ctx, "place:p1:reservations")
	assert.Equal(t, []string{"other"}, members)
}

func TestStoreFnErrorDiscardsBatch(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.SAdd("k", "v")
			return boom
		})
	}, "k")
	assert.ErrorIs(t, err, boom)

	members, _ := s.SMembers(ctx, "k")
	assert.Empty(t, members)
	assert.NoError(t, s.Ping(ctx))
}
