package entity

import (
	"encoding/json"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
)

// ProductInfo describes what is being reserved: a venue, a date and a slot.
// It is persisted as an opaque JSON payload inside transaction and reservation records.
type ProductInfo struct {
	PlaceID   string `json:"placeId" validate:"required"`
	PlaceName string `json:"placeName,omitempty"`
	Name      string `json:"name,omitempty"`
	Year      int    `json:"year" validate:"required,min=1970,max=9999"`
	Month     int    `json:"month" validate:"required,min=1,max=12"`
	Day       int    `json:"day" validate:"required,min=1,max=31"`
	Time      string `json:"time" validate:"required"`
}

// FormattedDate returns the reservation date as yyyyMMdd
func (p ProductInfo) FormattedDate() string {
	return fmt.Sprintf("%04d%02d%02d", p.Year, p.Month, p.Day)
}

// Slot parses the reserved time slot
func (p ProductInfo) Slot() (TimeSlot, error) {
	return ParseTimeSlot(p.Time)
}

// StartsAt returns the moment the reserved slot begins in the given location
func (p ProductInfo) StartsAt(loc *time.Location) (time.Time, error) {
	slot, err := p.Slot()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(p.Year, time.Month(p.Month), p.Day, slot.Start.Hour, slot.Start.Minute, 0, 0, loc), nil
}

// EndsAt returns the moment the reserved slot ends in the given location
func (p ProductInfo) EndsAt(loc *time.Location) (time.Time, error) {
	slot, err := p.Slot()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(p.Year, time.Month(p.Month), p.Day, slot.End.Hour, slot.End.Minute, 0, 0, loc), nil
}

// IsOnDate reports whether the reservation falls on the yyyyMMdd date
func (p ProductInfo) IsOnDate(date string) bool {
	return p.FormattedDate() == date
}

// Encode serializes the product info for storage inside a flat record
func (p ProductInfo) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode product info: %w", err)
	}
	return string(b), nil
}

// DecodeProductInfo parses a stored product info payload
func DecodeProductInfo(raw string) (ProductInfo, error) {
	var p ProductInfo
	if raw == "" {
		return p, fmt.Errorf("%w: empty payload", errs.ErrInvalidProductInfo)
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("%w: %s", errs.ErrInvalidProductInfo, err.Error())
	}
	return p, nil
}
