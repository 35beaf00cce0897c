package models

import "time"

// HealthStatus is the overall or per-check verdict.
type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

// Names of the individual health checks.
const (
	CheckToken        = "token"
	CheckConnectivity = "connectivity"
	CheckRateLimit    = "rate_limit"
	CheckRecordErrors = "record_errors"
	CheckFreshness    = "freshness"
)

// HealthCheck is the result of one probe.
type HealthCheck struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// HealthReport aggregates all probes.
type HealthReport struct {
	Status    HealthStatus            `json:"status"`
	Checks    []HealthCheck           `json:"checks"`
	Counts    RecordStatusCounts      `json:"record_counts"`
	LastSyncs map[SyncKind]*time.Time `json:"last_completed,omitempty"`
	CheckedAt time.Time               `json:"checked_at"`
}

// RateLimitState is the last quota information observed on the remote API.
type RateLimitState struct {
	Limit     int64     `json:"limit"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
	Known     bool      `json:"known"`
}
