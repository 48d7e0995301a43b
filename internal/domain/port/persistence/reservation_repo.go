package persistence

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// ReservationRepository stores reservations together with their by-user and
// by-venue index sets. Every mutation keeps the record and both index
// entries consistent in one atomic batch.
type ReservationRepository interface {
	// Get retrieves a reservation by id
	//
	// Possible errors:
	// - ErrReservationNotFound: If no reservation has the given id
	// - ErrPersistence: If the store read fails
	Get(ctx context.Context, reservationID string) (*entity.Reservation, error)

	// ListByUser returns the reservation ids indexed for a user
	ListByUser(ctx context.Context, userID string) ([]string, error)

	// ListByVenue returns the reservation ids indexed for a venue
	ListByVenue(ctx context.Context, placeID string) ([]string, error)

	// Insert materializes the reservation staged by txn: it writes the
	// record, indexes it by user and venue and retires the ledger entry.
	// The ledger entry is re-read under the watch.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the ledger entry vanished before the batch
	// - ErrConcurrentModification: If a watched key changed concurrently
	// - ErrPersistence: If the store fails
	Insert(ctx context.Context, txn *entity.Transaction) (*entity.Reservation, error)

	// Remove deletes the reservation and both of its index entries. The
	// reservation is re-read under the watch.
	//
	// Possible errors:
	// - ErrReservationNotFound: If the reservation vanished before the batch
	// - ErrConcurrentModification: If a watched key changed concurrently
	// - ErrPersistence: If the store fails
	Remove(ctx context.Context, reservation *entity.Reservation) error
}
