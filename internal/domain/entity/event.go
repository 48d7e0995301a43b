package entity

import "time"

// EventType names a reservation lifecycle event
type EventType string

// Event types
const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
)

// ReservationEvent is published after a reservation changes state
type ReservationEvent struct {
	Type          EventType         `json:"type"`
	Status        ReservationStatus `json:"status"`
	ReservationID string            `json:"reservationId"`
	UserID        string            `json:"userId"`
	PlaceID       string            `json:"placeId"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// Status returns the reservation state the event type leads to
func (t EventType) Status() ReservationStatus {
	if t == EventReservationCancelled {
		return StatusCancelled
	}
	return StatusConfirmed
}

// NewReservationEvent builds an event for a reservation
func NewReservationEvent(eventType EventType, r *Reservation, now time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		Status:        eventType.Status(),
		ReservationID: r.ID,
		UserID:        r.ReservedBy,
		PlaceID:       r.PlaceID(),
		Date:          r.ProductInfo.FormattedDate(),
		Time:          r.ProductInfo.Time,
		OccurredAt:    now,
	}
}
