package ports

import (
	"context"
	"iter"
	"time"
)

// ReserveInput carries the parameters of one reservation attempt. UserID is
// the external id of the authenticated principal. Date is day-granular.
type ReserveInput struct {
	HotelCode      string
	UserID         string
	Date           time.Time
	IdempotencyKey string
}

// BookingConfirmation is the caller-facing view of a booking: catalog details
// plus the check-in date, never raw internal identifiers.
type BookingConfirmation struct {
	HotelName string    `json:"hotelName"`
	Price     float64   `json:"price"`
	Location  string    `json:"location"`
	CheckIn   time.Time `json:"checkIn"`
}

// ReserveResult is returned by a successful (or replayed) reservation.
type ReserveResult struct {
	Confirmation BookingConfirmation
	// AlreadyExisted is true when the idempotency key matched a previous
	// reservation and no new booking was created.
	AlreadyExisted bool
}

// ReservationService is the reservation consistency engine's use-case surface.
type ReservationService interface {
	// Reserve performs the conflict-checked creation of a booking. For any
	// (hotel, date) slot at most one concurrent call succeeds; the others
	// observe domain.ErrSlotUnavailable.
	Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error)
	// Bookings returns a restartable, order-preserving sequence of the
	// account's booking confirmations. References that no longer resolve are
	// skipped. Resolution of the account itself happens eagerly so a missing
	// account surfaces as domain.ErrAccountNotFound.
	Bookings(ctx context.Context, userExternalID string) (iter.Seq[BookingConfirmation], error)
	// ListBookings collects Bookings into a slice for transport layers.
	ListBookings(ctx context.Context, userExternalID string) ([]BookingConfirmation, error)
}

// BookingNotification describes a committed reservation for downstream
// consumers (outbound event stream).
type BookingNotification struct {
	EventID   string    `json:"event_id"`
	HotelCode string    `json:"hotel_code"`
	HotelName string    `json:"hotel_name"`
	UserID    string    `json:"user_id"`
	CheckIn   time.Time `json:"check_in"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationService processes booking notifications emitted by Reserve.
type NotificationService interface {
	Process(ctx context.Context, n BookingNotification) error
}
