package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/memory"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(id, userID, placeID string) *entity.Transaction {
	return &entity.Transaction{
		ID:             id,
		UserID:         userID,
		Amount:         500,
		Currency:       "JPY",
		OrderID:        userID + "-1",
		ProductName:    "Akiba Square 2030/01/02 10:00-12:00",
		ConfirmURL:     "https://example.com/pay/confirm",
		ConfirmURLType: entity.ConfirmURLTypeServer,
		Type:           entity.TransactionTypeReserve,
		ProductInfo: entity.ProductInfo{
			PlaceID:   placeID,
			PlaceName: "Akiba Square",
			Year:      2030,
			Month:     1,
			Day:       2,
			Time:      "10:00-12:00",
		},
	}
}

type fixture struct {
	store        *memory.Store
	ledger       *TransactionLedger
	reservations *ReservationRepository
}

func setup() fixture {
	store := memory.NewStore(timeprovider.NewRealTimeProvider(time.UTC))
	log := logger.NewNoopLogger()
	return fixture{
		store:        store,
		ledger:       NewTransactionLedger(store, log),
		reservations: NewReservationRepository(store, log),
	}
}

// assertIndexed checks that the record and both index entries agree
func assertIndexed(t *testing.T, f fixture, id, userID, placeID string, want bool) {
	t.Helper()
	ctx := context.Background()

	h, err := f.store.HGetAll(ctx, ReservationKey(id))
	require.NoError(t, err)
	byUser, err := f.reservations.ListByUser(ctx, userID)
	require.NoError(t, err)
	byVenue, err := f.reservations.ListByVenue(ctx, placeID)
	require.NoError(t, err)

	assert.Equal(t, want, len(h) > 0, "record")
	assert.Equal(t, want, contains(byUser, id), "user index")
	assert.Equal(t, want, contains(byVenue, id), "venue index")
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestTransactionLedger(t *testing.T) {
	f := setup()
	ctx := context.Background()
	txn := newTestTransaction("tx-1", "U1", "place1")

	require.NoError(t, f.ledger.Stage(ctx, txn, 600*time.Second))

	got, err := f.ledger.Retrieve(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, txn, got)

	_, err = f.ledger.Retrieve(ctx, "tx-missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func TestReservationInsert(t *testing.T) {
	f := setup()
	ctx := context.Background()
	txn := newTestTransaction("tx-1", "U1", "place1")
	require.NoError(t, f.ledger.Stage(ctx, txn, 600*time.Second))

	reservation, err := f.reservations.Insert(ctx, txn)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", reservation.ID)
	assert.Equal(t, "U1", reservation.ReservedBy)
	assertIndexed(t, f, "tx-1", "U1", "place1", true)

	got, err := f.reservations.Get(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, reservation, got)

	// the ledger entry is retired with the batch
	_, err = f.ledger.Retrieve(ctx, "tx-1")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

	// replay does not create a second reservation
	_, err = f.reservations.Insert(ctx, txn)
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	ids, _ := f.reservations.ListByUser(ctx, "U1")
	assert.Equal(t, []string{"tx-1"}, ids)
}

func TestReservationInsertConflict(t *testing.T) {
	f := setup()
	ctx := context.Background()
	txn := newTestTransaction("tx-1", "U1", "place1")
	require.NoError(t, f.ledger.Stage(ctx, txn, 600*time.Second))

	f.store.SetBeforeExecHook(func(keys []string) {
		f.store.SetBeforeExecHook(nil)
		other := newTestTransaction("tx-2", "U2", "place1")
		require.NoError(t, f.ledger.Stage(ctx, other, 600*time.Second))
		_, err := f.reservations.Insert(ctx, other)
		require.NoError(t, err)
	})

	_, err := f.reservations.Insert(ctx, txn)
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)

	// nothing of the aborted batch leaked; the competing one is intact
	assertIndexed(t, f, "tx-1", "U1", "place1", false)
	assertIndexed(t, f, "tx-2", "U2", "place1", true)
	_, err = f.ledger.Retrieve(ctx, "tx-1")
	assert.NoError(t, err)
}

func TestReservationRemove(t *testing.T) {
	f := setup()
	ctx := context.Background()
	txn := newTestTransaction("tx-1", "U1", "place1")
	require.NoError(t, f.ledger.Stage(ctx, txn, 600*time.Second))
	reservation, err := f.reservations.Insert(ctx, txn)
	require.NoError(t, err)

	require.NoError(t, f.reservations.Remove(ctx, reservation))
	assertIndexed(t, f, "tx-1", "U1", "place1", false)

	_, err = f.reservations.Get(ctx, "tx-1")
	assert.ErrorIs(t, err, errs.ErrReservationNotFound)

	err = f.reservations.Remove(ctx, reservation)
	assert.ErrorIs(t, err, errs.ErrReservationNotFound)
}

func TestReservationGetCorruptPayload(t *testing.T) {
	f := setup()
	ctx := context.Background()

	require.NoError(t, f.store.Watch(ctx, func(tx persistence.KVTx) error {
		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.HSet(ReservationKey("bad"), map[string]string{fieldReservedBy: "U1", fieldProductInfo: "{"})
			return nil
		})
	}))

	_, err := f.reservations.Get(ctx, "bad")
	assert.ErrorIs(t, err, errs.ErrInvalidProductInfo)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "transaction:t1", TransactionKey("t1"))
	assert.Equal(t, "reservation:r1", ReservationKey("r1"))
	assert.Equal(t, "user:U1:reservations", UserReservationsKey("U1"))
	assert.Equal(t, "place:place1:reservations", PlaceReservationsKey("place1"))
}
