package service

import "errors"

// The engines classify every failure they produce themselves into one of
// three client-visible kinds. Anything else that surfaces from a store call
// is an internal error and is reported to the caller only as a generic
// message.

// ValidationError reports a missing or malformed request field. The message
// is the exact string returned to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports an identifier absent from the link table or from
// the caller's tenant index entry.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError reports an operation attempted on a soft-deleted record.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrIDSpaceExhausted is returned when the allocator runs out of attempts
// without finding a free identifier. It usually means the configured
// identifier length is too short for the table's population.
var ErrIDSpaceExhausted = errors.New("exhausted attempts to allocate a free identifier")

// clientError reports whether err carries a message meant for the caller,
// as opposed to an unexpected store failure.
func clientError(err error) bool {
	var (
		ve *ValidationError
		ne *NotFoundError
		ce *ConflictError
	)
	return errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &ce)
}
