package core

import "errors"

// Recoverable error kinds surfaced to callers. None of these represent
// programming errors; each corresponds to a named failure mode a
// caller can branch on with errors.Is.
var (
	// ErrInvalidReference is returned when a link's proposed outgoing
	// set names an AtomId that is not a live atom.
	ErrInvalidReference = errors.New("core: invalid reference")
	// ErrOccupied is returned by a non-recursive remove when the
	// target atom's incoming set is non-empty.
	ErrOccupied = errors.New("core: atom is occupied (non-empty incoming set)")
	// ErrNotFound marks a lookup miss in APIs that report failure as
	// an error rather than a zero/invalid Handle.
	ErrNotFound = errors.New("core: atom not found")
	// ErrBudgetExceeded marks an inference or matcher run that was
	// terminated by a configured resource budget rather than reaching
	// a natural stopping point.
	ErrBudgetExceeded = errors.New("core: budget exceeded")
	// ErrCancelled marks a cooperative cancellation signal firing
	// during matcher iteration or inference.
	ErrCancelled = errors.New("core: cancelled")
)
