package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-booking-system/internal/api/metrics"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Notifier routes booking notifications to a fixed set of workers using
// consistent hashing on the hotel code, guaranteeing per-hotel publish
// ordering. Enqueue never blocks the reservation path: when a worker channel
// is full the notification is dropped and counted.
type Notifier struct {
	workers []chan ports.BookingNotification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewNotifier creates a Notifier with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewNotifier(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Notifier {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	n := &Notifier{
		workers: make([]chan ports.BookingNotification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range n.workers {
		n.workers[i] = make(chan ports.BookingNotification, channelBuffer)
	}
	return n
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i, ch := range n.workers {
		go n.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its hotel.
func (n *Notifier) Enqueue(event ports.BookingNotification) {
	idx := n.shardIndex(event.HotelCode)
	select {
	case n.workers[idx] <- event:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(n.workers[idx])))
	default:
		metrics.NotificationErrorsTotal.WithLabelValues("queue_full").Inc()
		n.log.Warn().
			Str("hotel_code", event.HotelCode).
			Int("worker_id", idx).
			Msg("notification dropped, worker queue full")
	}
}

// shardIndex maps a hotel code deterministically to a worker index.
func (n *Notifier) shardIndex(hotelCode string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(hotelCode))
	return int(h.Sum32()) % len(n.workers)
}

func (n *Notifier) runWorker(ctx context.Context, id int, ch <-chan ports.BookingNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := n.service.Process(ctx, event); err != nil {
				n.log.Error().Err(err).
					Str("hotel_code", event.HotelCode).
					Int("worker_id", id).
					Msg("notification processing failed")
			}
		}
	}
}
