package domain

import "time"

// Hotel is a catalog entry. Code is the caller-chosen external identifier
// ("hotel code"); ID is the store-generated one. Hotels are immutable after
// creation and both Code and Name are globally unique.
type Hotel struct {
	ID        string    `json:"-"`
	Code      string    `json:"hotelId"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
