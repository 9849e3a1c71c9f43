// Package metrics defines and registers all custom Prometheus metrics for the
// rental engine. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// ── Rental transition metrics ─────────────────────────────────────────────────

// RentalsCreatedTotal counts successfully created rentals.
// Label:
//   - category: the item category ("" when the listing has none)
var RentalsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rentals_created_total",
		Help:      "Total number of rentals successfully created, by item category.",
	},
	[]string{"category"},
)

// RentalsReturnedTotal counts completed returns.
var RentalsReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rentals_returned_total",
		Help:      "Total number of rentals returned.",
	},
)

// RentalConflictsTotal counts rent attempts that lost the availability race.
var RentalConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rental_conflicts_total",
		Help:      "Total number of rent attempts rejected because the item was already rented.",
	},
)

// ── Per-item lock metrics ─────────────────────────────────────────────────────

// LockWaitDuration measures how long callers wait for the per-item exclusion token.
var LockWaitDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lock_wait_duration_seconds",
		Help:      "Time spent waiting to acquire the per-item exclusion token.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// LockTimeoutsTotal counts acquisitions that timed out and surfaced as Busy.
var LockTimeoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lock_timeouts_total",
		Help:      "Total number of per-item lock acquisitions that timed out.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts notifications delivered to a sink.
// Labels:
//   - event: "rental_created" or "rental_returned"
//   - sink: the delivery sink name (e.g. "email", "log")
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications successfully handed to a sink.",
	},
	[]string{"event", "sink"},
)

// NotificationsFailedTotal counts notification attempts that failed. Failures
// are logged and swallowed; this counter is the operator's visibility into them.
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notification delivery attempts that failed.",
	},
	[]string{"event", "sink"},
)

// NotificationsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, delivered)
var NotificationsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dedup_total",
		Help:      "Total number of notification dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
