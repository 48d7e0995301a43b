package model

import "time"

// SchemaVersion is one applied step of the venue directory schema.
// Rows are append-only; the newest AppliedAt is the current version.
type SchemaVersion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Version     string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	AppliedAt   time.Time `gorm:"not null;index"`
}

// TableName keeps the table name stable across struct renames
func (SchemaVersion) TableName() string {
	return "schema_versions"
}
