package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification indicates whether a failed database operation should be
// retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures (lost connection, deadlock,
	// serialization failure, busy database file).
	Retryable
)

// ErrorClassificator decides whether a driver error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL by
// inspecting the SQLSTATE code of a *pgconn.PgError.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification].
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
// Retryable codes:
//   - Class 08: connection exceptions
//   - Class 40: transaction rollback, serialization failure, deadlock
//   - 57P03: cannot connect now
//
// Everything else is [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection:
		return Retryable

	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Retryable

	case pgerrcode.CannotConnectNow: // 57P03
		return Retryable
	}

	return NonRetryable
}

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLITE_BUSY and SQLITE_LOCKED are
// retryable.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}
	return NonRetryable
}

// postgresError returns the SQLSTATE code of err, or "" if err is not a
// PostgreSQL error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation reports whether err is a unique constraint violation in
// either supported dialect.
func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
