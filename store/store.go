// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/contestops/compareround/models"
)

var (
	// ErrNotFound is returned when no session document exists for a contest.
	ErrNotFound = errors.New("compare session not found")

	// ErrConflict is returned when optimistic-concurrency retries are
	// exhausted. Transient conflicts below the retry cap are resolved
	// internally and never reach the caller.
	ErrConflict = errors.New("compare session write conflict")
)

// UpdateFn computes the next session state from the current one. current is
// nil when no document exists yet. The store may invoke the function more
// than once under contention, so it must be pure: no I/O, no logging, no
// mutation of current. Returning an error aborts the transaction without
// writing.
type UpdateFn func(current *models.CompareSession) (*models.CompareSession, error)

// SessionStore is the persistence contract for the shared session record.
// One document per contest; transactions on the same document are
// serialized by the store.
type SessionStore interface {
	// Get returns the current session document, or ErrNotFound.
	Get(ctx context.Context, contestID string) (*models.CompareSession, error)

	// Transact applies fn atomically via compare-and-swap and returns the
	// committed state. fn errors propagate unchanged; retry exhaustion
	// surfaces as ErrConflict.
	Transact(ctx context.Context, contestID string, fn UpdateFn) (*models.CompareSession, error)

	// AppendHistory writes one audit entry keyed by (contest, round).
	// Append-only: writing an entry for an already-recorded round is a
	// no-op, never an overwrite.
	AppendHistory(ctx context.Context, contestID string, entry models.HistoryEntry) error

	// History returns all recorded entries for a contest in round order.
	History(ctx context.Context, contestID string) ([]models.HistoryEntry, error)

	// Subscribe returns a channel receiving every state committed for the
	// contest after the call, and a cancel function that releases the
	// subscription. Slow consumers miss intermediate states rather than
	// blocking writers.
	Subscribe(contestID string) (<-chan models.CompareSession, func())
}
