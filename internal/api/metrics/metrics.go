// Package metrics defines and registers all custom Prometheus metrics for
// the billing console. It is the single source of truth for metric names,
// labels, and help strings. Metrics are registered with the default registry
// at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Resource container metrics ────────────────────────────────────────────────

// ResourceOpsTotal counts dispatched container operations.
// Labels:
//   - resource: the container name (e.g. "associates", "invoices")
//   - op: "list", "get", "create", "update" or "delete"
var ResourceOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_ops_total",
		Help:      "Total number of resource operations dispatched.",
	},
	[]string{"resource", "op"},
)

// ResourceOpErrorsTotal counts operations that settled in the failed state.
var ResourceOpErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_op_errors_total",
		Help:      "Total number of resource operations that failed.",
	},
	[]string{"resource", "op"},
)

// StaleResultsTotal counts settlements discarded because a newer operation
// was dispatched while they were in flight.
var StaleResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_results_total",
		Help:      "Total number of operation results discarded as stale.",
	},
	[]string{"resource"},
)

// ResourceOpDuration measures the time from dispatch to settlement.
// Label:
//   - op: the operation kind, shared across resources
var ResourceOpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resource_op_duration_seconds",
		Help:      "Duration of resource operations from dispatch to settlement.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle events.
// Label:
//   - event: "login", "logout", "magic_link", "verify_email"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events, by kind.",
	},
	[]string{"event"},
)
