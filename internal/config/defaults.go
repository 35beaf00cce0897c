package config

import (
	"time"

	"github.com/MKhiriev/crm-deal-sync/models"
)

// Default values applied to every field left unset by env, flags and JSON.
const (
	DefaultDBDriver          = "pgx"
	DefaultMaxOpenConns      = 10
	DefaultRequestTimeout    = 30 * time.Second
	DefaultMaxRetries        = 4
	DefaultRetryBaseDelay    = 500 * time.Millisecond
	DefaultRetryMaxDelay     = 30 * time.Second
	DefaultRateLimitMaxWait  = 2 * time.Minute
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 5
	DefaultMaxConcurrency    = 4
	DefaultPageSize          = 200
	DefaultSafetyMargin      = 60 * time.Second
	DefaultPollInterval      = 5 * time.Second
	DefaultMaxPollDuration   = 30 * time.Minute
	DefaultHealthProbe       = 30 * time.Second
	DefaultAPITokenDuration  = 12 * time.Hour
	DefaultAPITokenIssuer    = "crm-deal-sync"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:         "debug",
			APITokenIssuer:   DefaultAPITokenIssuer,
			APITokenDuration: DefaultAPITokenDuration,
		},
		Storage: Storage{
			DB: DB{
				Driver:       DefaultDBDriver,
				MaxOpenConns: DefaultMaxOpenConns,
			},
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout:    DefaultRequestTimeout,
			MaxRetries:        DefaultMaxRetries,
			RetryBaseDelay:    DefaultRetryBaseDelay,
			RetryMaxDelay:     DefaultRetryMaxDelay,
			RateLimitMaxWait:  DefaultRateLimitMaxWait,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
			MaxConcurrency:    DefaultMaxConcurrency,
			PageSize:          DefaultPageSize,
			Fields:            models.TrackedFields,
		},
		Auth: Auth{
			SafetyMargin: DefaultSafetyMargin,
		},
		Sync: Sync{
			ConflictPolicy: string(models.PolicyRemoteWins),
		},
		Bulk: Bulk{
			PollInterval:    DefaultPollInterval,
			MaxPollDuration: DefaultMaxPollDuration,
		},
		Workers: Workers{
			HealthProbeInterval: DefaultHealthProbe,
		},
	}
}
