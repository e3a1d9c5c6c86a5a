// README: Prometheus collectors for turns, store failures and HTTP traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_turns_total",
			Help: "Turns answered, by response type",
		},
		[]string{"response_type"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripmate_turn_duration_seconds",
			Help:    "Time spent answering a turn, excluding artificial reply delay",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"response_type"},
	)

	EditMerges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripmate_edit_merges_total",
			Help: "TRIP_EDIT payloads merged onto a stored block",
		},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_store_errors_total",
			Help: "Session or transcript store failures; the turn still succeeds",
		},
		[]string{"store", "op"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripmate_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)
)
