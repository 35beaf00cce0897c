package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrSyncAlreadyRunning is returned when a full or incremental session
	// of the same kind is already pending or in progress.
	ErrSyncAlreadyRunning = errors.New("a sync of this kind is already running")

	// ErrJobTimeout is recorded when a remote bulk job does not finish
	// within the configured maximum poll duration.
	ErrJobTimeout = errors.New("remote job did not finish in time")

	// ErrShuttingDown is returned by starts issued after Shutdown.
	ErrShuttingDown = errors.New("sync engine is shutting down")

	ErrSessionNotCancellable = errors.New("session is not cancellable")
	ErrNotBulkSession        = errors.New("session is not a bulk session")
	ErrRecordNotInConflict   = errors.New("record is not in conflict")
	ErrNoAccountIdentity     = errors.New("account identity could not be determined")
	ErrEmptyAccessToken      = errors.New("access token is required")

	ErrTokenIsExpired = errors.New("token is expired")
)

var (
	ErrTokenCreationFailed     = errors.New("operator token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("operator token is expired or invalid")
	ErrInvalidDataProvided     = errors.New("invalid data provided")
)
