package domain

import "time"

// Booking reserves one hotel for one calendar date on behalf of one account.
// The (HotelID, Date) pair is the slot the uniqueness invariant protects: the
// store enforces at most one booking per slot. Bookings are never mutated or
// deleted once created.
type Booking struct {
	ID             string    `json:"-"`
	HotelID        string    `json:"-"`
	UserID         string    `json:"-"`
	Date           time.Time `json:"date"`
	IdempotencyKey string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
