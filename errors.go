package async

import "errors"

// Namespace prefixes every sentinel error in this package, matching the
// teacher's convention of a single namespace constant for error messages.
const Namespace = "async"

var (
	// ErrPutOnClosed is returned synchronously by Put/AsyncPut when the
	// channel is already closed at the time of the call.
	ErrPutOnClosed = errors.New(Namespace + ": put on closed channel")

	// ErrInvalidArgument is returned when a nil value is passed to Put.
	// Other malformed inputs (negative buffer sizes, malformed Alt clauses)
	// panic at construction instead of returning this error.
	ErrInvalidArgument = errors.New(Namespace + ": invalid argument")

	// ErrTaskPanicked marks a task-runtime failure: an unhandled panic
	// inside a task body. The task's result channel is closed without a
	// value and the error is reported via SetTaskErrorHandler.
	ErrTaskPanicked = errors.New(Namespace + ": task execution panicked")
)
