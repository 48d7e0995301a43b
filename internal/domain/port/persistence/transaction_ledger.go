package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// TransactionLedger stages pending reservation requests keyed by the payment
// gateway's transaction id. Entries expire on their own when never confirmed.
//
// Entries are retired only inside ReservationRepository.Insert so that a
// confirmed payment is never left without its reservation.
type TransactionLedger interface {
	// Stage writes the transaction and sets its time-to-live
	//
	// Possible errors:
	// - ErrPersistence: If the store write fails
	Stage(ctx context.Context, txn *entity.Transaction, ttl time.Duration) error

	// Retrieve reads a staged transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the entry is absent or expired
	// - ErrInvalidProductInfo: If the stored payload is corrupt
	// - ErrPersistence: If the store read fails
	Retrieve(ctx context.Context, transactionID string) (*entity.Transaction, error)
}
