package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// uintQuery returns the named query parameter, or def when it is absent.
func uintQuery(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return v, nil
}
