// Package metrics defines and registers all custom Prometheus metrics for the
// hotel booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors register themselves with the default Prometheus registry at
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Reservation metrics ───────────────────────────────────────────────────────

// BookingsCreatedTotal counts bookings that were committed to the ledger.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings successfully created.",
	},
)

// BookingConflictsTotal counts reservation attempts that lost the race for a
// (hotel, date) slot.
// Label:
//   - hotel_code: the external code of the contested hotel
var BookingConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of reservation attempts rejected because the slot was taken.",
	},
	[]string{"hotel_code"},
)

// OrphanedRefsTotal counts booking references skipped during listing because
// their target no longer resolves.
// Label:
//   - kind: "booking" (the booking document is gone) or "hotel" (the booking's hotel is gone)
var OrphanedRefsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphaned_refs_total",
		Help:      "Total number of unresolvable booking references skipped while listing.",
	},
	[]string{"kind"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// HotelsCreatedTotal counts hotels added to the catalog.
var HotelsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hotels_created_total",
		Help:      "Total number of hotels registered in the catalog.",
	},
)

// AvailabilityQueriesTotal counts completed availability queries.
var AvailabilityQueriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_queries_total",
		Help:      "Total number of availability queries served.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsPublishedTotal counts booking notifications published to the
// event stream.
var NotificationsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of booking notifications published.",
	},
)

// NotificationErrorsTotal counts notifications that failed processing.
// Label:
//   - reason: short description of the failure ("encode", "publish")
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of booking notifications that failed processing.",
	},
	[]string{"reason"},
)

// NotificationQueueDepth tracks the current number of notifications waiting in
// each notifier worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each notifier worker channel.",
	},
	[]string{"worker_id"},
)
