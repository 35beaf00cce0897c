// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and context
// helpers used across the sync engine.
//
// Long-running work (sync sessions, bulk jobs, workers) gets its own child
// logger carrying identifying fields; request-scoped code pulls the logger
// attached to the context by the HTTP trace-id middleware.
package logger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON *Logger writing to stdout, labelled with role.
//
// Every entry carries "role", a timestamp and a "func" field holding the
// fully-qualified caller name. The global level starts at debug; use
// [SetLevel] to raise it.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewConsoleLogger constructs a human-readable *Logger writing to stderr.
// It is used by the operator CLI so that log lines never mix with command
// output on stdout.
func NewConsoleLogger(role string) *Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{logger}
}

// SetLevel sets the global zerolog level from its name. An empty name keeps
// the current level.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver and can be enriched without affecting it.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// Component returns a child logger tagged with a "component" field.
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// ForSession returns a child logger tagged with the session id and kind.
func (l *Logger) ForSession(sessionID, kind string) *Logger {
	return &Logger{l.With().Str("session_id", sessionID).Str("kind", kind).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. When none is attached,
// zerolog's default context logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
