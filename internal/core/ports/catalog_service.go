package ports

import (
	"context"
	"time"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

// CreateHotelInput carries the fields for registering a hotel. CallerUserID is
// the external id of the authenticated principal; only administrators pass
// admission control.
type CreateHotelInput struct {
	CallerUserID string
	Code         string
	Name         string
	Location     string
	Price        float64
}

// CatalogService defines use-case operations on the hotel catalog.
type CatalogService interface {
	CreateHotel(ctx context.Context, input CreateHotelInput) (*domain.Hotel, error)
	// AvailableHotels returns, in catalog order, every hotel with no booking
	// on the given day. The day must be strictly in the future. The result is
	// a point-in-time read and may be stale immediately after return.
	AvailableHotels(ctx context.Context, date time.Time) ([]*domain.Hotel, error)
}
