package adapter

import (
	"errors"
	"fmt"
)

// Error taxonomy of the remote CRM. Every error returned by this package
// matches exactly one of these with errors.Is.
var (
	// ErrAuthenticationRevoked means the refresh token is no longer accepted.
	// It is fatal and requires re-authorization.
	ErrAuthenticationRevoked = errors.New("authentication revoked")
	// ErrAuthenticationUnavailable means the auth endpoint could not be
	// reached or failed transiently.
	ErrAuthenticationUnavailable = errors.New("authentication unavailable")
	ErrRateLimited               = errors.New("rate limited by remote api")
	// ErrValidation means the remote API rejected the payload.
	ErrValidation        = errors.New("payload rejected by remote api")
	ErrRemoteUnavailable = errors.New("remote api unavailable")

	ErrUnauthorized = errors.New("remote api rejected the access token")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("remote record not found")

	ErrPagerExhausted  = errors.New("pager exhausted")
	ErrEmptyJobID      = errors.New("remote accepted the job without an id")
	ErrMalformedResult = errors.New("malformed bulk result")
)

// APIError carries the detail of a non-2xx response from the remote API.
// It unwraps to the taxonomy sentinel matching its status code.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any

	kind error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s %s", e.kind, e.Code, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: http %d %s: %s", e.kind, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: http %d: %s", e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// IsTransient reports whether err is worth retrying with backoff.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrAuthenticationUnavailable)
}
