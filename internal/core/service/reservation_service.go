package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-booking-system/internal/api/metrics"
	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

// BookingNotifier hands committed reservations to the async notification
// pipeline. Enqueue must never block the reservation path.
type BookingNotifier interface {
	Enqueue(n ports.BookingNotification)
}

// ReservationService implements the conflict-checked reservation ledger.
type ReservationService struct {
	hotels   ports.HotelRepository
	users    ports.UserRepository
	bookings ports.BookingRepository
	notifier BookingNotifier
	logger   zerolog.Logger
}

func NewReservationService(
	hotels ports.HotelRepository,
	users ports.UserRepository,
	bookings ports.BookingRepository,
	notifier BookingNotifier,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		hotels:   hotels,
		users:    users,
		bookings: bookings,
		notifier: notifier,
		logger:   logger,
	}
}

// Reserve books the (hotel, date) slot for the given account. The slot check
// and the insert are a single atomic step in the store, so of two concurrent
// calls for the same slot exactly one succeeds and the other observes
// domain.ErrSlotUnavailable. The booking row and the owner's booking-reference
// append commit together.
func (s *ReservationService) Reserve(ctx context.Context, input ports.ReserveInput) (*ports.ReserveResult, error) {
	if input.HotelCode == "" || input.UserID == "" {
		return nil, fmt.Errorf("%w: hotelId and userId are required", domain.ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	day := domain.Day(input.Date)
	if day.Before(domain.Today()) {
		return nil, domain.ErrPastDate
	}

	hotel, err := s.hotels.FindByCode(ctx, input.HotelCode)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// Idempotent replay: a key this account already used for the same request
	// returns the original confirmation without touching the ledger. Keys are
	// scoped to the account, so one caller's key never resolves to another
	// account's booking.
	if input.IdempotencyKey != "" {
		existing, err := s.bookings.FindByIdempotencyKey(ctx, user.ID, input.IdempotencyKey)
		if err == nil && s.isReplay(existing, user, hotel, day) {
			s.logger.Info().
				Str("idempotency_key", input.IdempotencyKey).
				Str("hotel_code", hotel.Code).
				Str("user_id", user.UserID).
				Msg("idempotent replay")
			return &ports.ReserveResult{
				Confirmation:   s.confirmation(hotel, existing.Date),
				AlreadyExisted: true,
			}, nil
		}
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		HotelID:        hotel.ID,
		UserID:         user.ID,
		Date:           day,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.bookings.CreateWithOwner(ctx, booking, user.ID); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.BookingConflictsTotal.WithLabelValues(hotel.Code).Inc()
			return nil, err
		}
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			// A concurrent retry with the same key committed between our
			// replay check and the insert; replay it if it matches this
			// request, otherwise the key was reused for a different one.
			existing, findErr := s.bookings.FindByIdempotencyKey(ctx, user.ID, input.IdempotencyKey)
			if findErr == nil && s.isReplay(existing, user, hotel, day) {
				return &ports.ReserveResult{
					Confirmation:   s.confirmation(hotel, existing.Date),
					AlreadyExisted: true,
				}, nil
			}
			return nil, err
		}
		s.logger.Error().Err(err).
			Str("hotel_code", hotel.Code).
			Str("user_id", user.UserID).
			Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("hotel_code", hotel.Code).
		Str("user_id", user.UserID).
		Time("check_in", day).
		Msg("hotel booked")

	if s.notifier != nil {
		s.notifier.Enqueue(ports.BookingNotification{
			HotelCode: hotel.Code,
			HotelName: hotel.Name,
			UserID:    user.UserID,
			CheckIn:   day,
			CreatedAt: now,
		})
	}

	return &ports.ReserveResult{Confirmation: s.confirmation(hotel, day)}, nil
}

// Bookings resolves the account eagerly, then returns a restartable sequence
// that walks the account's booking references in append order. A reference
// whose booking or hotel no longer resolves is skipped: the gap is counted
// and logged but never surfaced to the caller.
func (s *ReservationService) Bookings(ctx context.Context, userExternalID string) (iter.Seq[ports.BookingConfirmation], error) {
	if userExternalID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByUserID(ctx, userExternalID)
	if err != nil {
		return nil, err
	}

	return func(yield func(ports.BookingConfirmation) bool) {
		for _, ref := range user.Bookings {
			booking, err := s.bookings.FindByID(ctx, ref)
			if err != nil {
				s.skipOrphan(userExternalID, ref, "booking", err)
				continue
			}
			hotel, err := s.hotels.FindByID(ctx, booking.HotelID)
			if err != nil {
				s.skipOrphan(userExternalID, ref, "hotel", err)
				continue
			}
			if !yield(s.confirmation(hotel, booking.Date)) {
				return
			}
		}
	}, nil
}

// ListBookings collects Bookings into a slice for transport layers.
func (s *ReservationService) ListBookings(ctx context.Context, userExternalID string) ([]ports.BookingConfirmation, error) {
	seq, err := s.Bookings(ctx, userExternalID)
	if err != nil {
		return nil, err
	}

	confirmations := make([]ports.BookingConfirmation, 0)
	for c := range seq {
		confirmations = append(confirmations, c)
	}
	return confirmations, nil
}

// isReplay reports whether existing is this account's booking for exactly the
// request being retried. A key match alone is not enough: the owner, hotel and
// date must all agree before the stored confirmation may stand in for a new
// insert.
func (s *ReservationService) isReplay(existing *domain.Booking, user *domain.User, hotel *domain.Hotel, day time.Time) bool {
	return existing != nil &&
		existing.UserID == user.ID &&
		existing.HotelID == hotel.ID &&
		existing.Date.Equal(day)
}

func (s *ReservationService) confirmation(hotel *domain.Hotel, checkIn time.Time) ports.BookingConfirmation {
	return ports.BookingConfirmation{
		HotelName: hotel.Name,
		Price:     hotel.Price,
		Location:  hotel.Location,
		CheckIn:   checkIn,
	}
}

func (s *ReservationService) skipOrphan(userID, ref, kind string, err error) {
	metrics.OrphanedRefsTotal.WithLabelValues(kind).Inc()
	s.logger.Warn().Err(err).
		Str("user_id", userID).
		Str("booking_ref", ref).
		Str("kind", kind).
		Msg("skipping unresolvable booking reference")
}
