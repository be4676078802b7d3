package ports

import (
	"context"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

// HotelRepository defines persistence operations for the hotel catalog.
type HotelRepository interface {
	// Create inserts a new hotel. The store enforces uniqueness of both the
	// hotel code and the name; violations surface as
	// domain.ErrDuplicateHotelCode / domain.ErrDuplicateHotelName.
	Create(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error)
	// FindByCode retrieves a hotel by its external hotel code.
	FindByCode(ctx context.Context, code string) (*domain.Hotel, error)
	FindByID(ctx context.Context, id string) (*domain.Hotel, error)
	// ListExcluding returns all hotels whose internal id is not in excludeIDs,
	// in catalog (insertion) order.
	ListExcluding(ctx context.Context, excludeIDs []string) ([]*domain.Hotel, error)
}
