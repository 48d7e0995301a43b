package repository

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
)

// ReservationRepository keeps reservation hashes and their by-user and
// by-venue index sets in a KV store. Every mutation goes through one
// watch + atomic batch covering the record key and both index keys.
type ReservationRepository struct {
	store       persistence.KVStore
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewReservationRepository creates a reservation store on top of store
func NewReservationRepository(store persistence.KVStore, logger coreport.Logger) *ReservationRepository {
	return &ReservationRepository{
		store:       store,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

// Get retrieves a reservation by id
func (r *ReservationRepository) Get(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	h, err := r.store.HGetAll(ctx, ReservationKey(reservationID))
	if err != nil {
		return nil, r.errorMapper.MapStoreError(err, "get reservation")
	}
	if len(h) == 0 {
		return nil, errs.ErrReservationNotFound
	}
	return decodeReservation(reservationID, h)
}

// ListByUser returns the reservation ids indexed for a user
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, UserReservationsKey(userID))
	if err != nil {
		return nil, r.errorMapper.MapStoreError(err, "list reservations by user")
	}
	return ids, nil
}

// ListByVenue returns the reservation ids indexed for a venue
func (r *ReservationRepository) ListByVenue(ctx context.Context, placeID string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, PlaceReservationsKey(placeID))
	if err != nil {
		return nil, r.errorMapper.MapStoreError(err, "list reservations by venue")
	}
	return ids, nil
}

// Insert writes the reservation staged by txn, indexes it and retires the
// ledger entry in one batch. The ledger entry is re-read under the watch so
// a replayed confirm cannot create the reservation twice.
func (r *ReservationRepository) Insert(ctx context.Context, txn *entity.Transaction) (*entity.Reservation, error) {
	txKey := TransactionKey(txn.ID)
	userKey := UserReservationsKey(txn.UserID)
	placeKey := PlaceReservationsKey(txn.PlaceID())

	var reservation *entity.Reservation

	err := r.store.Watch(ctx, func(tx persistence.KVTx) error {
		h, err := tx.HGetAll(ctx, txKey)
		if err != nil {
			return err
		}
		if len(h) == 0 {
			return errs.ErrTransactionNotFound
		}
		staged, err := decodeTransaction(txn.ID, h)
		if err != nil {
			return err
		}

		reservation = entity.NewReservationFromTransaction(staged)
		fields, err := encodeReservation(reservation)
		if err != nil {
			return err
		}

		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.HSet(ReservationKey(reservation.ID), fields)
			b.SAdd(UserReservationsKey(reservation.ReservedBy), reservation.ID)
			b.SAdd(PlaceReservationsKey(reservation.PlaceID()), reservation.ID)
			b.Del(txKey)
			return nil
		})
	}, txKey, userKey, placeKey)

	if err != nil {
		return nil, r.errorMapper.MapStoreError(err, "insert reservation")
	}

	r.logger.Info("Reservation stored", map[string]any{
		"reservation_id": reservation.ID,
		"user_id":        reservation.ReservedBy,
		"place_id":       reservation.PlaceID(),
	})
	return reservation, nil
}

// Remove deletes the reservation and both of its index entries in one batch
func (r *ReservationRepository) Remove(ctx context.Context, reservation *entity.Reservation) error {
	resKey := ReservationKey(reservation.ID)
	userKey := UserReservationsKey(reservation.ReservedBy)
	placeKey := PlaceReservationsKey(reservation.PlaceID())

	err := r.store.Watch(ctx, func(tx persistence.KVTx) error {
		h, err := tx.HGetAll(ctx, resKey)
		if err != nil {
			return err
		}
		if len(h) == 0 {
			return errs.ErrReservationNotFound
		}

		return tx.Exec(ctx, func(b persistence.KVBatch) error {
			b.Del(resKey)
			b.SRem(userKey, reservation.ID)
			b.SRem(placeKey, reservation.ID)
			return nil
		})
	}, resKey, userKey, placeKey)

	if err != nil {
		return r.errorMapper.MapStoreError(err, "remove reservation")
	}

	r.logger.Info("Reservation removed", map[string]any{
		"reservation_id": reservation.ID,
		"user_id":        reservation.ReservedBy,
		"place_id":       reservation.PlaceID(),
	})
	return nil
}
