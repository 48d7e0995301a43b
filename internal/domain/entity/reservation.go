package entity

import (
	"time"
)

// ReservationStatus is the state a lifecycle event leaves the reservation in
type ReservationStatus string

// Reservation states
const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a durable record confirming a user holds a venue, date and slot
type Reservation struct {
	ID          string      // Same as the originating transaction id
	ReservedBy  string      // Owner, immutable
	ProductInfo ProductInfo // What was reserved
}

// NewReservationFromTransaction materializes the reservation a confirmed ledger entry stands for
func NewReservationFromTransaction(txn *Transaction) *Reservation {
	return &Reservation{
		ID:          txn.ID,
		ReservedBy:  txn.UserID,
		ProductInfo: txn.ProductInfo,
	}
}

// PlaceID returns the reserved venue
func (r *Reservation) PlaceID() string {
	return r.ProductInfo.PlaceID
}

// IsOwnedBy reports whether the user holds this reservation
func (r *Reservation) IsOwnedBy(userID string) bool {
	return userID != "" && r.ReservedBy == userID
}

// IsUpcoming reports whether the reserved slot has not ended yet at now.
// A reservation whose slot cannot be parsed is treated as past.
func (r *Reservation) IsUpcoming(now time.Time, loc *time.Location) bool {
	end, err := r.ProductInfo.EndsAt(loc)
	if err != nil {
		return false
	}
	return !now.After(end)
}
