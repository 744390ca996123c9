package seq

import (
	"errors"
	"fmt"
)

// OutOfRangeError is returned by Get when the requested position is
// outside [0, length).
type OutOfRangeError struct {
	// Index is the requested position.
	Index int

	// Length is the sequence length at the time of the call.
	Length int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

// NotIndexableError is returned by Get on an IterableOnly sequence.
// Positional access is only defined for Indexable nodes; anything
// downstream of Filter must be drained with Each instead.
type NotIndexableError struct {
	// Capability is the actual capability of the node.
	Capability Capability
}

// Error implements the error interface.
func (e *NotIndexableError) Error() string {
	return fmt.Sprintf("sequence is %s: positional access requires an indexable sequence", e.Capability)
}

// AlreadySettledError is returned by Handle.Cancel when the handle has
// already reached a terminal state. Settlement is single-fire; a
// settled handle is never reused.
type AlreadySettledError struct {
	// State is the terminal state the handle was in.
	State HandleState
}

// Error implements the error interface.
func (e *AlreadySettledError) Error() string {
	return fmt.Sprintf("async handle already settled: %s", e.State)
}

// IsOutOfRange reports whether err is an OutOfRangeError.
// Uses errors.As to handle wrapped errors.
func IsOutOfRange(err error) bool {
	var oor *OutOfRangeError
	return errors.As(err, &oor)
}

// IsNotIndexable reports whether err is a NotIndexableError.
// Uses errors.As to handle wrapped errors.
func IsNotIndexable(err error) bool {
	var ni *NotIndexableError
	return errors.As(err, &ni)
}

// IsAlreadySettled reports whether err is an AlreadySettledError.
// Uses errors.As to handle wrapped errors.
func IsAlreadySettled(err error) bool {
	var as *AlreadySettledError
	return errors.As(err, &as)
}
