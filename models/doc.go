// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the engine.

# Domain Types

  - CompareSession: the shared per-contest session record
  - CompareSettings: target size, score mode, vote scope (write-once per round)
  - JudgeVote: one panel seat's entry, keyed by seat index
  - PlayerRef: composite (number, uid) player identity
  - HistoryEntry: immutable snapshot of a confirmed round
  - VoteTallyEntry: derived per-player count, never persisted

# Constants

Phases:

	PhaseIdle, PhaseVoting, PhaseInProgress, PhaseEnded, PhaseCanceled

Vote status per seat:

	VoteNotStarted, VoteInProgress, VoteCompleted

Score modes and vote scopes:

	ScoreModeAll, ScoreModeTopOnly, ScoreModeTopWithSub
	VoteScopeAll, VoteScopePreviousSelection

# Request/Response Types

StartCompareRequest, ConfirmCompareRequest, ForceConfirmRequest,
CancelCompareRequest, EndCompareRequest and their responses mirror the
handler surface; ErrorResponse carries error and message.
*/
package models
