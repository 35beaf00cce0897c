package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUnsupportedDriver is returned by [NewConnect] for an unknown
	// database/sql driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrCredentialNotFound is returned when no credential row exists for the
	// requested account identity.
	ErrCredentialNotFound = errors.New("credential was not found")

	// ErrSessionNotFound is returned when a sync session id is unknown.
	ErrSessionNotFound = errors.New("sync session was not found")

	// ErrSessionAlreadyActive is returned when a session of the same kind is
	// already pending or in progress.
	ErrSessionAlreadyActive = errors.New("a session of this kind is already active")

	// ErrInvalidStatusTransition is returned when a session status update
	// does not find the session in the expected source status.
	ErrInvalidStatusTransition = errors.New("invalid session status transition")

	// ErrRecordStatusNotFound is returned when no sync status row exists for
	// a remote record id.
	ErrRecordStatusNotFound = errors.New("record sync status was not found")

	// ErrDealNotFound is returned when no local deal matches the lookup.
	ErrDealNotFound = errors.New("deal was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingColumn is returned when a JSON column cannot be encoded or
	// decoded.
	ErrEncodingColumn = errors.New("failed to encode json column")
)
