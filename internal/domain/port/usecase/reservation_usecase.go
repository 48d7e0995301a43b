package usecase

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// InitiateRequest asks to start paying for a reservation
type InitiateRequest struct {
	UserID      string
	ProductInfo entity.ProductInfo
}

// InitiateResult carries the payment page the user must visit
type InitiateResult struct {
	TransactionID string
	PaymentURL    string
	Amount        int64
	Currency      string
}

// ReservationUseCase drives a reservation through its lifecycle
type ReservationUseCase interface {
	// Initiate reserves a charge with the payment gateway and stages the
	// pending reservation in the transaction ledger
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)

	// Confirm materializes the reservation staged under transactionID and
	// captures the payment. Replayed or expired callbacks get ErrTransactionNotFound.
	Confirm(ctx context.Context, transactionID string) (*entity.Reservation, error)

	// Cancel removes a reservation owned by userID
	Cancel(ctx context.Context, userID string, reservationID string) error
}
