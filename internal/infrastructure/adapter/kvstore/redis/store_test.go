package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s := NewStoreFromClient(client, logger.NewNoopLogger())
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStoreBatch(t *testing.T) {
	s, mr := setupStore(t)
	ctx := context.Background()

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		h, err := tx.HGetAll(ctx, "transaction:tx1")
		require.NoError(t, err)
		assert.Empty(t, h)

		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.HSet("transaction:tx1", map[string]string{"userId": "U1", "amount": "500"})
			b.Expire("transaction:tx1", 600*time.Second)
			b.SAdd("user:U1:reservations", "a", "b")
			b.SRem("user:U1:reservations", "b")
			return nil
		})
	}, "transaction:tx1")
	require.NoError(t, err)

	h, err := s.HGetAll(ctx, "transaction:tx1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"userId": "U1", "amount": "500"}, h)
	assert.Equal(t, 600*time.Second, mr.TTL("transaction:tx1"))

	members, err := s.SMembers(ctx, "user:U1:reservations")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, members)

	mr.FastForward(601 * time.Second)
	h, err = s.HGetAll(ctx, "transaction:tx1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestStoreWatchConflict(t *testing.T) {
	s, mr := setupStore(t)
	ctx := context.Background()

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		// a second client modifies the watched key
		other := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		defer other.Close()
		require.NoError(t, other.SAdd(ctx, "place:p1:reservations", "other").Err())

		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.SAdd("place:p1:reservations", "mine")
			b.Del("transaction:tx1")
			return nil
		})
	}, "place:p1:reservations")

	assert.ErrorIs(t, err, persistence.ErrTxConflict)
	members, _ := mr.Members("place:p1:reservations")
	assert.Equal(t, []string{"other"}, members)
}

func TestStoreFnErrorPassesThrough(t *testing.T) {
	s, _ := setupStore(t)
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
}

func TestStoreUnreachable(t *testing.T) {
	s, mr := setupStore(t)
	mr.Close()

	err := s.Ping(context.Background())
	assert.ErrorIs(t, err, errs.ErrPersistence)

	_, err = s.HGetAll(context.Background(), "k")
	assert.ErrorIs(t, err, errs.ErrPersistence)
}
