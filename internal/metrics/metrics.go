// Package metrics declares the portal's Prometheus collectors.
// They register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aletheia_portal"

// NavigationsTotal counts hash navigations.
// Labels:
//   - route: matched pattern, or "unmatched"
//   - outcome: "ok", "error", "redirect" or "superseded"
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Total number of hash navigations, labelled by route and outcome.",
	},
	[]string{"route", "outcome"},
)

// NavigationDuration measures page initializer run time.
var NavigationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "navigation_duration_seconds",
		Help:      "Duration of page initializers.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ActionsTotal counts page actions by name and outcome ("ok" or "error").
var ActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of page actions, labelled by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// APIRequestsTotal counts backend calls.
// Labels:
//   - method: HTTP method
//   - endpoint: the wrapper name, e.g. "listBuildings"
//   - status: "2xx", "4xx", "5xx", "unauthenticated" or "error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API requests.",
	},
	[]string{"method", "endpoint", "status"},
)

// APIRequestDuration measures backend round trips.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)

// TabsActive tracks registered browser tabs.
var TabsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tabs_active",
		Help:      "Number of browser tabs currently registered.",
	},
)

// StreamsOpen tracks open SSE streams.
var StreamsOpen = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "streams_open",
		Help:      "Number of open SSE streams.",
	},
)

// StatusClass buckets an HTTP status code into "2xx", "4xx", etc.
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "error"
	}
}
