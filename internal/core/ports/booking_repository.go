package ports

import (
	"context"
	"time"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

// BookingRepository defines persistence operations for the reservation ledger.
type BookingRepository interface {
	// CreateWithOwner inserts the booking and appends its id to the owning
	// account's booking list as one atomic unit: both writes become visible
	// together or not at all. A booking already occupying the same
	// (hotel, date) slot causes domain.ErrSlotUnavailable with no mutation.
	// On success booking.ID is populated.
	CreateWithOwner(ctx context.Context, booking *domain.Booking, ownerID string) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// FindByIdempotencyKey retrieves the booking the given account created
	// under key, if any. Keys are scoped per account; the same key used by a
	// different account is invisible here.
	FindByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Booking, error)
	// HotelIDsOnDate returns the internal ids of all hotels holding a booking
	// for exactly the given day.
	HotelIDsOnDate(ctx context.Context, date time.Time) ([]string, error)
}
