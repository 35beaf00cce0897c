// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/crm-deal-sync/models"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A config with nothing set at all is accepted so that the builder can be
// exercised without any source.
func (cfg *StructuredConfig) validate() error {
	if cfg.isZero() {
		return nil
	}

	switch cfg.Storage.DB.Driver {
	case "pgx", "sqlite3":
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.BaseURL == "" {
		return fmt.Errorf("%w: empty base url", ErrInvalidAdapterConfigs)
	}
	if _, err := url.ParseRequestURI(cfg.Adapter.BaseURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}
	if cfg.Adapter.PageSize <= 0 || cfg.Adapter.MaxRetries < 0 || cfg.Adapter.MaxConcurrency <= 0 {
		return fmt.Errorf("%w: page size, retries and concurrency must be positive", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.RetryMaxDelay < cfg.Adapter.RetryBaseDelay {
		return fmt.Errorf("%w: retry max delay is below base delay", ErrInvalidAdapterConfigs)
	}

	if cfg.Auth.TokenURL == "" || cfg.Auth.Account == "" {
		return fmt.Errorf("%w: token url and account are required", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.SafetyMargin < 0 {
		return fmt.Errorf("%w: negative safety margin", ErrInvalidAuthConfigs)
	}

	if !models.ConflictPolicy(cfg.Sync.ConflictPolicy).Valid() {
		return fmt.Errorf("%w: unknown conflict policy %q", ErrInvalidSyncConfigs, cfg.Sync.ConflictPolicy)
	}
	for _, f := range cfg.Sync.LocalOwnedFields {
		if !models.IsTrackedField(f) {
			return fmt.Errorf("%w: %q is not a tracked field", ErrInvalidSyncConfigs, f)
		}
	}
	if _, err := cfg.Sync.EpochTime(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyncConfigs, err)
	}

	if cfg.Bulk.PollInterval <= 0 || cfg.Bulk.MaxPollDuration < cfg.Bulk.PollInterval {
		return fmt.Errorf("%w: poll interval must be positive and below max poll duration", ErrInvalidBulkConfigs)
	}

	return nil
}

func (cfg *StructuredConfig) isZero() bool {
	return cfg.Storage.DB.Driver == "" &&
		cfg.Storage.DB.DSN == "" &&
		cfg.Adapter.BaseURL == "" &&
		cfg.Auth.TokenURL == ""
}
