package types

import (
	"errors"
	"fmt"
)

// Error taxonomy for a run. Connection and parse failures are fatal
// (exit code 2); cancellation is a clean stop with no mutation (exit
// code 1); a DeletionError covers a single record and never aborts the
// remaining deletions.
var (
	// ErrConnection marks failures to reach or authenticate to the
	// CardDAV server.
	ErrConnection = errors.New("connection failed")

	// ErrParse marks malformed input (vCard file or server payload).
	ErrParse = errors.New("parse failed")
)

// ConnectionError wraps a transport or authentication failure.
func ConnectionError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConnection, fmt.Sprintf(format, args...))
}

// ParseError wraps a malformed-input failure.
func ParseError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// DeletionError records the failure to delete a single contact. The run
// continues; failures are tallied in the final summary.
type DeletionError struct {
	RecordID string
	Err      error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.RecordID, e.Err)
}

func (e *DeletionError) Unwrap() error { return e.Err }
