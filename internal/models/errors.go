package models

import (
	"errors"
	"fmt"
)

// ErrNoData signals a legitimately empty result (no readings stored, or an
// empty aggregation window). It is not a failure of the system.
var ErrNoData = errors.New("no data available")

// ValidationError reports malformed, missing, or out-of-range input. It is
// always the caller's fault and is never retried.
type ValidationError struct {
	// Field identifies the offending input field(s)
	Field string

	// Reason is the user-facing error message
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a failure of the persistence layer. It is surfaced to the
// caller as-is; there is no internal retry or reconnect logic.
type StoreError struct {
	// Op names the store operation that failed
	Op string

	// Err is the underlying driver error
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
