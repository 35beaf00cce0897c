package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// errorBody is the error envelope of the remote API.
type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
	Status  string         `json:"status"`
}

// mapHTTPError turns a non-2xx response into an *APIError. It returns nil for
// 2xx responses.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), kind: kindForStatus(resp.StatusCode())}

	raw := strings.TrimSpace(string(resp.Body()))
	var body errorBody
	if raw != "" && json.Unmarshal(resp.Body(), &body) == nil && (body.Code != "" || body.Message != "") {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Details = body.Details
	} else {
		apiErr.Message = raw
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}

	return apiErr
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity,
		status == http.StatusRequestEntityTooLarge, status == http.StatusConflict:
		return ErrValidation
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusRequestTimeout, status >= http.StatusInternalServerError:
		return ErrRemoteUnavailable
	default:
		return ErrValidation
	}
}

// mapTransportError classifies an error returned before any response was
// received. Cancellation of the caller's context passes through unchanged;
// everything else, client timeouts included, is transient.
func mapTransportError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
}
