package entity

// Venue is static reference data for a reservable place
type Venue struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // Price per slot in the configured currency's minor unit
}
