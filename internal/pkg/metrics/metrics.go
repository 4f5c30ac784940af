// Package metrics defines and registers all custom Prometheus metrics for the
// book review service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookreviews"

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewMutationsTotal counts review ledger calls.
// Labels:
//   - operation: "upsert" or "delete"
//   - result: "ok", "unauthenticated", "invalid", "not_found" or "internal"
var ReviewMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_mutations_total",
		Help:      "Total number of review upserts and deletes, by outcome.",
	},
	[]string{"operation", "result"},
)

// ReviewEventsRecordedTotal counts activity log entries written.
// Label:
//   - action: "upserted" or "deleted"
var ReviewEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_events_recorded_total",
		Help:      "Total number of review activity events persisted.",
	},
	[]string{"action"},
)

// ReviewEventsErrorsTotal counts activity log writes that failed.
var ReviewEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_events_errors_total",
		Help:      "Total number of review activity events that failed to persist.",
	},
	[]string{"action"},
)

// ReviewEventsDroppedTotal counts events discarded because a worker queue was full.
var ReviewEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_events_dropped_total",
		Help:      "Total number of review activity events dropped because the dispatcher queue was full.",
	},
	[]string{"action"},
)

// ReviewEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReviewEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "review_events_queue_depth",
		Help:      "Current number of review events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ReviewEventRecordDuration measures how long persisting one activity event takes.
var ReviewEventRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_event_record_duration_seconds",
		Help:      "Duration of review activity persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid" (missing credentials) or "rejected"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)
