package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock overrides Now; the other TimeProvider methods are unused here
type fakeClock struct {
	coreport.TimeProvider
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewStore(clock), clock
}

func write(t *testing.T, s *Store, fn func(b persistence.KVBatch), keys ...string) error {
	t.Helper()
	return s.Watch(context.Background(), func(tx persistence.KVTx) error {
		return tx.Exec(context.Background(), func(b persistence.KVBatch) error {
			fn(b)
			return nil
		})
	}, keys...)
}

func TestStoreReadsMissingKeysAsEmpty(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	h, err := s.HGetAll(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, h)

	m, err := s.SMembers(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestStoreBatchAppliesAllWrites(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	err := write(t, s, func(b persistence.KVBatch) {
		b.HSet("reservation:1", map[string]string{"reservedBy": "U1"})
		b.SAdd("user:U1:reservations", "1")
		b.SAdd("place:p1:reservations", "1", "2")
		b.SRem("place:p1:reservations", "2")
	}, "user:U1:reservations")
	require.NoError(t, err)

	h, _ := s.HGetAll(ctx, "reservation:1")
	assert.Equal(t, map[string]string{"reservedBy": "U1"}, h)
	members, _ := s.SMembers(ctx, "place:p1:reservations")
	assert.Equal(t, []string{"1"}, members)
	assert.Equal(t, 3, s.Len())

	require.NoError(t, write(t, s, func(b persistence.KVBatch) {
		b.Del("reservation:1")
		b.SRem("user:U1:reservations", "1")
	}))
	assert.Equal(t, 1, s.Len(), "emptied sets are removed")
}

func TestStoreExpiry(t *testing.T) {
	s, clock := newTestStore()
	ctx := context.Background()

	require.NoError(t, write(t, s, func(b persistence.KVBatch) {
		b.HSet("transaction:tx1", map[string]string{"userId": "U1"})
		b.Expire("transaction:tx1", 600*time.Second)
		b.Expire("missing", time.Second)
	}))

	clock.Advance(599 * time.Second)
	h, _ := s.HGetAll(ctx, "transaction:tx1")
	assert.NotEmpty(t, h)

	clock.Advance(time.Second)
	h, _ = s.HGetAll(ctx, "transaction:tx1")
	assert.Empty(t, h)
	assert.Equal(t, 0, s.Len())
}

func TestStoreWatchConflict(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	t.Run("Competing write aborts the batch", func(t *testing.T) {
		err := s.Watch(ctx, func(tx persistence.KVTx) error {
			// another client writes the watched key
			require.NoError(t, write(t, s, func(b persistence.KVBatch) {
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
	})

	t.Run("Writes to unwatched keys do not conflict", func(t *testing.T) {
		err := s.Watch(ctx, func(tx persistence.KVTx) error {
			require.NoError(t, write(t, s, func(b persistence.KVBatch) {
				b.SAdd("place:p2:reservations", "other")
			}))
			return tx.Exec(ctx, func(b persistence.KVBatch) error {
				b.SAdd("place:p1:reservations", "mine")
				return nil
			})
		}, "place:p1:reservations")
		assert.NoError(t, err)
	})

	t.Run("Hook injects a competing write", func(t *testing.T) {
		var once sync.Once
		s.SetBeforeExecHook(func(keys []string) {
			once.Do(func() {
				assert.Contains(t, keys, "user:U1:reservations")
				require.NoError(t, write(t, s, func(b persistence.KVBatch) {
					b.SAdd("user:U1:reservations", "x")
				}))
			})
		})
		defer s.SetBeforeExecHook(nil)

		err := write(t, s, func(b persistence.KVBatch) {
			b.SAdd("user:U1:reservations", "y")
		}, "user:U1:reservations")
		assert.ErrorIs(t, err, persistence.ErrTxConflict)

		err = write(t, s, func(b persistence.KVBatch) {
			b.SAdd("user:U1:reservations", "y")
		}, "user:U1:reservations")
		assert.NoError(t, err)
	})
}

func TestStoreExecOnlyOnce(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		noop := func(b persistence.KVBatch) error { return nil }
		require.NoError(t, tx.Exec(ctx, noop))
		return tx.Exec(ctx, noop)
	})
	assert.ErrorIs(t, err, ErrExecCalled)
}

func TestStoreBatchErrorDiscardsWrites(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Watch(ctx, func(tx persistence.KVTx) error {
		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.SAdd("k", "v")
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}
