// Package metrics holds the Prometheus collectors of the sync engine and the
// helpers that record into them. Collectors register with the default
// registry on import and are exposed by the HTTP server on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the API and token collectors.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
	OutcomeRevoked     = "revoked"
)

// Retry reasons.
const (
	RetryRateLimit    = "rate_limit"
	RetryTransient    = "transient"
	RetryUnauthorized = "unauthorized"
)

var (
	// Remote CRM API
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_api_requests_total",
			Help: "Total number of outbound CRM API attempts",
		},
		[]string{"endpoint", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_api_request_duration_seconds",
			Help:    "Duration of outbound CRM API attempts in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_api_retries_total",
			Help: "Total number of CRM API retries by reason",
		},
		[]string{"reason"},
	)

	RateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crm_api_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the CRM rate-limit window to reset",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_circuit_breaker_state",
			Help: "State of the CRM circuit breaker (0=closed, 1=half-open, 2=open)",
		},
	)

	// Sync sessions
	SyncSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_sessions_total",
			Help: "Total number of sync sessions reaching a terminal status",
		},
		[]string{"kind", "status"},
	)

	SyncRecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_processed_total",
			Help: "Total number of records applied by sync sessions",
		},
		[]string{"kind"},
	)

	SyncConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_conflicts_total",
			Help: "Total number of detected record conflicts by outcome",
		},
		[]string{"outcome"},
	)

	// Bulk jobs
	BulkJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_jobs_total",
			Help: "Total number of bulk operations by kind and final status",
		},
		[]string{"kind", "status"},
	)

	// Token manager
	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_refresh_total",
			Help: "Total number of remote token refreshes by outcome",
		},
		[]string{"outcome"},
	)

	// Health
	HealthStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_health_check_status",
			Help: "Result of the last health check per component (1=healthy, 0.5=degraded, 0=unhealthy)",
		},
		[]string{"check"},
	)
)

// RecordAPIRequest records one outbound CRM attempt.
func RecordAPIRequest(endpoint, outcome string, duration time.Duration) {
	APIRequests.WithLabelValues(endpoint, outcome).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func RecordRetry(reason string) {
	APIRetries.WithLabelValues(reason).Inc()
}

func RecordRateLimitWait(d time.Duration) {
	RateLimitWait.Observe(d.Seconds())
}

// SetCircuitBreakerState maps a breaker state name to the gauge value.
func SetCircuitBreakerState(state string) {
	switch state {
	case "closed":
		CircuitBreakerState.Set(0)
	case "half-open":
		CircuitBreakerState.Set(1)
	case "open":
		CircuitBreakerState.Set(2)
	}
}

// RecordSessionFinished records a session reaching a terminal status together
// with the number of records it applied.
func RecordSessionFinished(kind, status string, recordsProcessed int64) {
	SyncSessions.WithLabelValues(kind, status).Inc()
	if recordsProcessed > 0 {
		SyncRecordsProcessed.WithLabelValues(kind).Add(float64(recordsProcessed))
	}
}

func RecordConflict(outcome string) {
	SyncConflicts.WithLabelValues(outcome).Inc()
}

func RecordBulkJob(kind, status string) {
	BulkJobs.WithLabelValues(kind, status).Inc()
}

func RecordTokenRefresh(outcome string) {
	TokenRefreshes.WithLabelValues(outcome).Inc()
}

// SetHealthCheck stores the result of one health check. Unknown statuses are
// reported as unhealthy.
func SetHealthCheck(check, status string) {
	var v float64
	switch status {
	case "healthy":
		v = 1
	case "degraded":
		v = 0.5
	}
	HealthStatus.WithLabelValues(check).Set(v)
}
