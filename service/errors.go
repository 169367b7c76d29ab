package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound marks a read of an address holding no account.
	// Read paths treat it as "not yet created", never as a failure.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAlreadyClaimed is the local pre-submission guard against a claim
	// record that already exists for (distribution, user).
	ErrAlreadyClaimed = errors.New("dividend already claimed for this epoch")

	// ErrEpochMismatch reports a caller-supplied epoch that does not equal
	// the pool's current epoch counter.
	ErrEpochMismatch = errors.New("epoch does not match the pool's current epoch")

	// ErrNotWhitelisted reports a campaign creator without an active
	// whitelist entry.
	ErrNotWhitelisted = errors.New("wallet is not whitelisted")

	// ErrListingExists reports an active listing already derived for the
	// same (seller, mint) pair.
	ErrListingExists = errors.New("active listing already exists for this seller and mint")
)

// SubmissionError wraps a transaction the remote ledger rejected. The
// underlying cause is surfaced verbatim and never retried by this layer.
type SubmissionError struct {
	Instruction string
	Err         error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s submission rejected: %v", e.Instruction, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
