// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the shared compare-session record and its audit
history.

# Session Documents

Each contest owns one session document, the single source of truth for
all concurrent callers (judge clients, the round operator, watchers).
Writes go through Transact, a compare-and-swap loop:

	next, err := store.Transact(ctx, contestID, func(current *models.CompareSession) (*models.CompareSession, error) {
		// pure: may run more than once under contention
	})

The update function receives nil when no document exists. Transient
conflicts are retried internally; exhaustion surfaces as ErrConflict.

# Audit History

AppendHistory writes one entry per confirmed round, keyed by
(contest, round). The write is append-only: a second entry for the same
round is a no-op, never an overwrite.

# Watching

Subscribe returns a channel carrying every state committed after the
call. Watchers are read-only consumers; a slow watcher misses
intermediate states rather than blocking commits.

# Implementations

PostgresStore keeps documents as JSONB rows guarded by a version column.
MemoryStore has identical semantics in process memory and backs tests
and the -t memory dev mode.
*/
package store
