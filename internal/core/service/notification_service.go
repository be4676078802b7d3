package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-booking-system/internal/api/metrics"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for outbound
// notifications.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// Publisher abstracts the event stream (Kafka). The key selects the partition
// so per-hotel ordering is preserved downstream.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

type notificationService struct {
	dedup     DedupChecker
	publisher Publisher
	log       zerolog.Logger
}

// NewNotificationService returns a NotificationService that deduplicates and
// publishes booking-created events.
func NewNotificationService(dedup DedupChecker, publisher Publisher, log zerolog.Logger) ports.NotificationService {
	return &notificationService{dedup: dedup, publisher: publisher, log: log}
}

// Process deduplicates and publishes a single booking notification. A missing
// event id is assigned here so retried deliveries of the same notification
// value stay distinguishable from genuinely new ones.
func (s *notificationService) Process(ctx context.Context, n ports.BookingNotification) error {
	if n.EventID == "" {
		n.EventID = uuid.NewString()
	}

	isDup, err := s.dedup.IsDuplicate(ctx, n.EventID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", n.EventID).Msg("dedup check failed, publishing anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", n.EventID).Msg("duplicate notification skipped")
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		metrics.NotificationErrorsTotal.WithLabelValues("encode").Inc()
		return fmt.Errorf("encode notification: %w", err)
	}

	if err := s.publisher.Publish(ctx, n.HotelCode, payload); err != nil {
		metrics.NotificationErrorsTotal.WithLabelValues("publish").Inc()
		return fmt.Errorf("publish notification: %w", err)
	}

	// Mark only after the publish succeeded; a failed publish must stay
	// eligible for redelivery.
	if markErr := s.dedup.Mark(ctx, n.EventID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", n.EventID).Msg("failed to set dedup key")
	}

	metrics.NotificationsPublishedTotal.Inc()
	s.log.Info().
		Str("event_id", n.EventID).
		Str("hotel_code", n.HotelCode).
		Str("user_id", n.UserID).
		Msg("booking notification published")

	return nil
}
