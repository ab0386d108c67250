package store

import (
	"errors"
	"fmt"
)

// ErrLocked is returned by Lock when another invocation holds the run lock.
var ErrLocked = errors.New("store: another run holds the lock")

// StateParseError reports a state document that is missing or corrupt.
// For optional documents callers treat it as "absent" and log it.
type StateParseError struct {
	Path  string
	Cause error
}

func (e *StateParseError) Error() string {
	return fmt.Sprintf("store: cannot read %s: %v", e.Path, e.Cause)
}

func (e *StateParseError) Unwrap() error {
	return e.Cause
}
