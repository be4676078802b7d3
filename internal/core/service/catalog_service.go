package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-booking-system/internal/api/metrics"
	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

// CatalogService implements hotel registration and the availability query.
type CatalogService struct {
	hotels   ports.HotelRepository
	users    ports.UserRepository
	bookings ports.BookingRepository
	logger   zerolog.Logger
}

func NewCatalogService(
	hotels ports.HotelRepository,
	users ports.UserRepository,
	bookings ports.BookingRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{hotels: hotels, users: users, bookings: bookings, logger: logger}
}

// CreateHotel registers a new hotel. Only administrator accounts pass
// admission control. Hotel code and name uniqueness is enforced by the store,
// so two concurrent creations of the same code or name cannot both succeed.
func (s *CatalogService) CreateHotel(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error) {
	caller, err := s.users.FindByUserID(ctx, input.CallerUserID)
	if err != nil {
		return nil, err
	}

	if decision := domain.Authorize(caller, domain.ActionCreateHotel); !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, decision.Reason)
	}

	if strings.TrimSpace(input.Code) == "" || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Location) == "" {
		return nil, fmt.Errorf("%w: hotelId, name and location are required", domain.ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	hotel := &domain.Hotel{
		Code:      input.Code,
		Name:      input.Name,
		Location:  input.Location,
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.hotels.Create(ctx, hotel)
	if err != nil {
		return nil, err
	}

	metrics.HotelsCreatedTotal.Inc()
	s.logger.Info().
		Str("hotel_code", created.Code).
		Str("name", created.Name).
		Str("created_by", caller.UserID).
		Msg("hotel created")

	return created, nil
}

// AvailableHotels returns every hotel without a booking on the given day, in
// catalog order. The day must be strictly in the future. The result reflects
// ledger state at query time only; a concurrent Reserve may race ahead.
func (s *CatalogService) AvailableHotels(ctx context.Context, date time.Time) ([]*domain.Hotel, error) {
	if date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	day := domain.Day(date)
	if !day.After(domain.Today()) {
		return nil, fmt.Errorf("%w: date must be in the future", domain.ErrInvalidDate)
	}

	booked, err := s.bookings.HotelIDsOnDate(ctx, day)
	if err != nil {
		return nil, err
	}

	available, err := s.hotels.ListExcluding(ctx, booked)
	if err != nil {
		return nil, err
	}

	metrics.AvailabilityQueriesTotal.Inc()
	return available, nil
}
