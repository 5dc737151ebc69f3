// Package metrics defines the custom Prometheus metrics of the vehicle catalog.
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "showroom"

// ── Access metrics ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user", "bad_credential", "invalid" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts requests stopped by an access guard.
// Label:
//   - guard: the guard name (e.g. "authenticated", "role:ADMIN")
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by an access guard.",
	},
	[]string{"guard"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// VehicleQueriesTotal counts listing queries.
// Labels:
//   - filtered: "true" when a search term was applied
//   - sorted: "true" when a recognised sort field was applied
var VehicleQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicle_queries_total",
		Help:      "Total number of vehicle listing queries.",
	},
	[]string{"filtered", "sorted"},
)

// VehicleCacheTotal counts vehicle detail cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var VehicleCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicle_cache_total",
		Help:      "Total number of vehicle detail cache lookups, by result.",
	},
	[]string{"result"},
)

// SeededRecordsTotal counts records written by the startup seeder.
// Label:
//   - kind: "account" or "vehicle"
var SeededRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seeded_records_total",
		Help:      "Total number of records written by the startup seeder.",
	},
	[]string{"kind"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts role-change audit events.
// Label:
//   - result: "written", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of role-change audit events, by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
