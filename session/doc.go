// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the compare-round consensus engine: the phase
state machine, vote tallying, top-N selection, and the coordinator that
composes them over the shared session record.

# Phases

A session moves through five phases:

	idle → voting → in_progress → ended
	         └→ canceled (→ idle via a fresh start)

Every transition is computed as a pure function of the current stored
state and applied through the store's optimistic transaction, which may
invoke the function more than once under contention. The transition
functions therefore perform no I/O and receive timestamps and entry ids
as parameters.

# Operations

The Coordinator exposes the caller-facing operations:

	coord := session.NewCoordinator(store)
	coord.StartCompare(ctx, contestID, round, settings, seats, actor)
	coord.ConfirmCompare(ctx, contestID, round, players, actor, requireComplete)
	coord.ForceConfirmCompare(ctx, contestID, round, players, actor)
	coord.CancelCompare(ctx, contestID, actor)
	coord.EndCompare(ctx, contestID, actor)

Confirm and force-confirm append an immutable history entry for the
round. The entry is carried inside the session document (atomic with the
phase flip) and mirrored to the history table as a separate write; a
failed mirror surfaces as PartialCommitError with the confirm already
committed.

# Tally and Selection

Tally counts votes per player across the whole judge map, keyed by the
composite (number, uid) identity. PickTop takes the leading n entries
with tie-expansion: contenders tied at the cutoff rank are included
rather than dropped, deferring the tie to the human operators.

# Errors

Engine failures are typed: PhaseError, RoundMismatchError,
ValidationError, IncompleteVoteError, PartialCommitError. A PhaseError
means someone else changed the round state first; re-read before acting
again.
*/
package session
