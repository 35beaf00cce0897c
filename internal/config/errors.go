package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote CRM client settings
	// (for example, missing base URL or non-positive page size).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates missing OAuth settings.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidSyncConfigs indicates an unknown conflict policy, an
	// untracked owned field, or an unparsable epoch.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidBulkConfigs indicates inconsistent polling settings.
	ErrInvalidBulkConfigs = errors.New("invalid bulk configuration")
)
