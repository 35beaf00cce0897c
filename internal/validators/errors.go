package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidDeal wraps every struct-level rule violation reported by the
	// validation engine.
	ErrInvalidDeal = errors.New("invalid deal")

	ErrUntrackedField     = errors.New("field is not tracked")
	ErrInvalidFieldValue  = errors.New("invalid field value")
	ErrNoFieldsToUpdate   = errors.New("at least one field must be provided for update")
	ErrEmptyRemoteID      = errors.New("remote record id is required")
	ErrUnexpectedRemoteID = errors.New("insert must not carry a remote record id")
	ErrEmptyBatch         = errors.New("records list cannot be empty")
	ErrBatchTooLarge      = errors.New("too many records for this operation")
	ErrInvalidOperation   = errors.New("invalid bulk operation")
	ErrInvalidStrategy    = errors.New("invalid override strategy")
	ErrIncompleteMerge    = errors.New("merge map must name a side for every field")
)
