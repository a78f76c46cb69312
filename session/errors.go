// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "fmt"

// PhaseError reports an operation attempted from an incompatible phase.
// Callers must not retry blindly: re-read the session and decide whether
// the action is still meaningful (someone else may already have confirmed).
type PhaseError struct {
	Op    string
	Phase string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s while session is %s", e.Op, e.Phase)
}

// RoundMismatchError reports an operation addressed to a round that is no
// longer the session's current round.
type RoundMismatchError struct {
	Requested int
	Current   int
}

func (e *RoundMismatchError) Error() string {
	return fmt.Sprintf("operation targets round %d but session is on round %d", e.Requested, e.Current)
}

// ValidationError reports malformed input, rejected before any transaction
// is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IncompleteVoteError reports a confirm with require_complete set while
// some seats have not finished voting.
type IncompleteVoteError struct {
	Completed int
	Total     int
}

func (e *IncompleteVoteError) Error() string {
	return fmt.Sprintf("only %d of %d judges have completed voting", e.Completed, e.Total)
}

// PartialCommitError reports a confirmed round whose audit mirror write
// failed. The phase flip and the in-document history entry are committed;
// only the history table row is missing and needs operator reconciliation.
type PartialCommitError struct {
	ContestID  string
	RoundIndex int
	Err        error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("round %d of contest %s confirmed but history mirror failed: %v",
		e.RoundIndex, e.ContestID, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }
