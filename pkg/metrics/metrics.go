package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gogotex", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gogotex", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	CommentOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gogotex", Subsystem: "comments", Name: "operations_total", Help: "Comment operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	// StoreErrors counts failed comment operations by error kind
	// (not_found, validation, unavailable, internal).
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gogotex", Subsystem: "comments", Name: "store_errors_total", Help: "Failed comment operations by error kind."},
		[]string{"operation", "kind"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(CommentOperations)
	reg.MustRegister(StoreErrors)
}
