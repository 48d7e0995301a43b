package repository

// Store key layout shared by the ledger and the reservation store
const (
	transactionKeyPrefix = "transaction:"
	reservationKeyPrefix = "reservation:"
)

// TransactionKey is the hash holding a staged transaction
func TransactionKey(transactionID string) string {
	return transactionKeyPrefix + transactionID
}

// ReservationKey is the hash holding a reservation
func ReservationKey(reservationID string) string {
	return reservationKeyPrefix + reservationID
}

// UserReservationsKey is the set of reservation ids held by a user
func UserReservationsKey(userID string) string {
	return "user:" + userID + ":reservations"
}

// PlaceReservationsKey is the set of reservation ids made for a venue
func PlaceReservationsKey(placeID string) string {
	return "place:" + placeID + ":reservations"
}
