package prometheus

import (
	"time"

	"lostfound-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Tenant context metrics
	TenantContextMissingCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Lost & Found item metrics
	LostItemReportsCounter    prometheus.Counter
	FoundItemRegistersCounter prometheus.Counter

	// Matching metrics
	MatchCandidatesCounter prometheus.CounterVec
	MatchVerifiedCounter   prometheus.CounterVec
	ClaimsFinalizedCounter prometheus.Counter

	// Disposal sweep metrics
	ItemsDisposedCounter    prometheus.Counter
	DisposalSweepErrCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	TenantContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Total number of requests without tenant context",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	LostItemReportsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_lost_item_reports_total",
			Help: "Total number of lost item reports",
		},
	)

	FoundItemRegistersCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_found_item_registrations_total",
			Help: "Total number of found item registrations",
		},
	)

	MatchCandidatesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_match_candidates_total",
			Help: "Total number of match candidates generated",
		},
		[]string{"source"},
	)

	MatchVerifiedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_match_verifications_total",
			Help: "Total number of match verifications by outcome",
		},
		[]string{"outcome"},
	)

	ClaimsFinalizedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_claims_finalized_total",
			Help: "Total number of finalized claims",
		},
	)

	ItemsDisposedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_items_disposed_total",
			Help: "Total number of found items disposed by the sweep",
		},
	)

	DisposalSweepErrCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_disposal_sweep_errors_total",
			Help: "Total number of per-item errors during disposal sweeps",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordMatchCandidates adds generated candidate counts for a generation source
func RecordMatchCandidates(source string, count int) {
	MatchCandidatesCounter.WithLabelValues(source).Add(float64(count))
}

// RecordMatchVerification increments the verification counter for an outcome
func RecordMatchVerification(outcome string) {
	MatchVerifiedCounter.WithLabelValues(outcome).Inc()
}
