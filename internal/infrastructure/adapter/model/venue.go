package model

import (
	"time"
)

// Venue represents the database model for reservable places
type Venue struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"not null"` // Price per slot in the currency's minor unit
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Venue
func (Venue) TableName() string {
	return "venues"
}
