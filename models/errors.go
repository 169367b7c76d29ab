package models

import "fmt"

// InvariantViolationError reports a locally computed value that contradicts
// a protocol invariant (for example a negative available-token count).
// Callers must treat it as fatal and abort before anything is submitted to
// the ledger; it is never clamped or retried.
type InvariantViolationError struct {
	Entity string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation on %s: %s", e.Entity, e.Detail)
}
