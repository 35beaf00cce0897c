// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// OperatorCtxKey is the key under which the authenticated operator name is
// stored by the bearer-token middleware.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.OperatorCtxKey, "ops")
var OperatorCtxKey = contextKey("operator")

// TraceIDCtxKey is the key under which the request trace id is stored.
var TraceIDCtxKey = contextKey("traceID")

// GetOperatorFromContext retrieves the operator name from the context.
//
// Returns the operator and an ok flag:
//   - ok == true  — value is found and is a non-empty string
//   - ok == false — value is missing, empty or has an unexpected type
func GetOperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorCtxKey).(string)
	return operator, ok && operator != ""
}

// GetTraceIDFromContext returns the trace id attached to ctx, or "".
func GetTraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDCtxKey).(string)
	return id
}
