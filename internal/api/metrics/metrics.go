// Package metrics defines and registers all custom Prometheus metrics for the
// candipilot API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry through promauto at
// package load; the HTTP layer only needs to expose /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "candipilot"

// ApplicationsCreatedTotal counts created applications.
// Label:
//   - status: the initial board column (usually "todo")
var ApplicationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of applications created, by initial status.",
	},
	[]string{"status"},
)

// QuotaRejectionsTotal counts requests refused by a quota or plan gate.
// Label:
//   - gate: "applications", "followups", or "export"
var QuotaRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_rejections_total",
		Help:      "Total number of requests rejected by a quota or pro-plan gate.",
	},
	[]string{"gate"},
)

// FollowupsGeneratedTotal counts successful AI follow-up generations.
// Label:
//   - tier: "free" or "pro"
var FollowupsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "followups_generated_total",
		Help:      "Total number of AI follow-up emails generated, by account tier.",
	},
	[]string{"tier"},
)

// ExportsTotal counts successful CSV exports.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV exports produced.",
	},
)

// WebhookEventsTotal counts billing webhook deliveries.
// Labels:
//   - type: the provider event type (e.g. "checkout.session.completed")
//   - result: "applied", "duplicate", "ignored", or "error"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of billing webhook events received, by type and outcome.",
	},
	[]string{"type", "result"},
)
