// Package metrics defines and registers all custom Prometheus metrics for the
// task-management API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskapi"

// ── Authentication metrics ────────────────────────────────────────────────────

// RegistrationsTotal counts successfully registered users.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts minted tokens across registration and login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens minted.",
	},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDeniedTotal counts mutations rejected by the authorization policy.
// Label:
//   - operation: "task_delete", "task_update", or "comment_delete"
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of mutations rejected by the authorization policy.",
	},
	[]string{"operation"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "middle", or "high"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TaskCacheTotal counts task cache lookups.
// Label:
//   - result: "hit" or "miss"
var TaskCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_cache_total",
		Help:      "Total number of task cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
