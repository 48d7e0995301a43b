package dto

import (
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// ProductInfo is the wire form of what is being reserved
type ProductInfo struct {
	PlaceID   string `json:"placeId"`
	PlaceName string `json:"placeName,omitempty"`
	Name      string `json:"name,omitempty"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Time      string `json:"time"`
}

// ToEntity converts the wire form to the domain type
func (p ProductInfo) ToEntity() entity.ProductInfo {
	return entity.ProductInfo{
		PlaceID:   p.PlaceID,
		PlaceName: p.PlaceName,
		Name:      p.Name,
		Year:      p.Year,
		Month:     p.Month,
		Day:       p.Day,
		Time:      p.Time,
	}
}

// ProductInfoFromEntity converts the domain type to its wire form
func ProductInfoFromEntity(p entity.ProductInfo) ProductInfo {
	return ProductInfo{
		PlaceID:   p.PlaceID,
		PlaceName: p.PlaceName,
		Name:      p.Name,
		Year:      p.Year,
		Month:     p.Month,
		Day:       p.Day,
		Time:      p.Time,
	}
}

// ReserveRequest is the body of POST /reservations
type ReserveRequest struct {
	UserID      string       `json:"userId"`
	ProductInfo *ProductInfo `json:"productInfo" binding:"required"`
}

// ReserveResponse carries the payment page the user must visit
type ReserveResponse struct {
	Result        string `json:"result"`
	URI           string `json:"uri"`
	TransactionID string `json:"transactionId"`
}

// AvailableTimesResponse lists free periods in schedule order
type AvailableTimesResponse struct {
	AvailableTimes []string `json:"availableTimes"`
}

// Reservation is one entry of a user's reservation listing
type Reservation struct {
	ReservationID string      `json:"reservationId"`
	ProductInfo   ProductInfo `json:"productInfo"`
}

// ReservationsResponse lists a user's upcoming reservations
type ReservationsResponse struct {
	Reservations []Reservation `json:"reservations"`
}

// NewReservationsResponse converts domain reservations
func NewReservationsResponse(list []*entity.Reservation) ReservationsResponse {
	out := make([]Reservation, 0, len(list))
	for _, r := range list {
		out = append(out, Reservation{
			ReservationID: r.ID,
			ProductInfo:   ProductInfoFromEntity(r.ProductInfo),
		})
	}
	return ReservationsResponse{Reservations: out}
}
