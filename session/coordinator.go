// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contestops/compareround/models"
	"github.com/contestops/compareround/store"
)

// Transitions rejected because no session document exists surface the
// store's sentinel so callers see one NotFound regardless of which layer
// detected it.
var errNoSession = store.ErrNotFound

// Coordinator exposes the compare-round operations to the surrounding
// console. All coordination state lives in the shared session record; the
// coordinator itself is stateless and safe for concurrent use.
type Coordinator struct {
	store store.SessionStore
}

func NewCoordinator(s store.SessionStore) *Coordinator {
	return &Coordinator{store: s}
}

// ConfirmResult reports a confirm outcome. HistoryWritten is false when
// the phase flip committed but the history table mirror did not; the
// in-document history entry is committed either way.
type ConfirmResult struct {
	Session        *models.CompareSession
	HistoryWritten bool
}

// StartCompare seeds a new voting round for the contest, resetting any
// previous round's judges and selection. History persists across resets.
func (c *Coordinator) StartCompare(ctx context.Context, contestID string, roundIndex int, settings models.CompareSettings, seats []models.SeatAssignment, actor string) (*models.CompareSession, error) {
	if err := validateStart(roundIndex, settings, seats); err != nil {
		return nil, err
	}

	params := startParams{
		contestID:  contestID,
		roundIndex: roundIndex,
		settings:   settings,
		seats:      seats,
		actor:      actor,
		now:        time.Now().UTC(),
	}
	next, err := c.store.Transact(ctx, contestID, func(current *models.CompareSession) (*models.CompareSession, error) {
		return applyStart(current, params)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("compare round started",
		"contest_id", contestID,
		"round_index", roundIndex,
		"target_size", settings.TargetSize,
		"seats", len(seats),
		"actor", actor,
	)
	return next, nil
}

// ConfirmCompare locks in the selected players for the round. With
// requireComplete set, the stored judge map is re-checked inside the
// transaction and stragglers reject the confirm; without it the caller
// vouches for the gate itself.
func (c *Coordinator) ConfirmCompare(ctx context.Context, contestID string, roundIndex int, selected []models.PlayerRef, actor string, requireComplete bool) (ConfirmResult, error) {
	return c.confirm(ctx, contestID, confirmParams{
		roundIndex:      roundIndex,
		selected:        selected,
		actor:           actor,
		forced:          false,
		requireComplete: requireComplete,
	})
}

// ForceConfirmCompare finalizes the round on an authority's word without
// requiring every judge to have completed voting. The history entry is
// flagged forced for later audit.
func (c *Coordinator) ForceConfirmCompare(ctx context.Context, contestID string, roundIndex int, selected []models.PlayerRef, actor string) (ConfirmResult, error) {
	return c.confirm(ctx, contestID, confirmParams{
		roundIndex: roundIndex,
		selected:   selected,
		actor:      actor,
		forced:     true,
	})
}

func (c *Coordinator) confirm(ctx context.Context, contestID string, params confirmParams) (ConfirmResult, error) {
	if params.roundIndex < 1 {
		return ConfirmResult{}, &ValidationError{Field: "round_index", Reason: "must be at least 1"}
	}

	params.entryID = uuid.NewString()
	params.now = time.Now().UTC()

	next, err := c.store.Transact(ctx, contestID, func(current *models.CompareSession) (*models.CompareSession, error) {
		return applyConfirm(current, params)
	})
	if err != nil {
		return ConfirmResult{}, err
	}

	slog.Info("compare round confirmed",
		"contest_id", contestID,
		"round_index", params.roundIndex,
		"selected", len(next.SelectedPlayers),
		"forced", params.forced,
		"actor", params.actor,
	)

	// Mirror the committed entry to the history table. This write is
	// deliberately outside the session transaction; its failure leaves the
	// confirm committed and is reported, not rolled back.
	entry := next.History[params.roundIndex]
	if err := c.store.AppendHistory(ctx, contestID, entry); err != nil {
		slog.Warn("history mirror failed after confirm",
			"contest_id", contestID,
			"round_index", params.roundIndex,
			"error", err,
		)
		return ConfirmResult{Session: next, HistoryWritten: false}, &PartialCommitError{
			ContestID:  contestID,
			RoundIndex: params.roundIndex,
			Err:        err,
		}
	}

	return ConfirmResult{Session: next, HistoryWritten: true}, nil
}

// CancelCompare aborts a voting round. No history entry is written for a
// canceled round.
func (c *Coordinator) CancelCompare(ctx context.Context, contestID, actor string) (*models.CompareSession, error) {
	now := time.Now().UTC()
	next, err := c.store.Transact(ctx, contestID, func(current *models.CompareSession) (*models.CompareSession, error) {
		return applyCancel(current, actor, now)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("compare round canceled", "contest_id", contestID, "round_index", next.RoundIndex, "actor", actor)
	return next, nil
}

// EndCompare closes out a confirmed round once its results have been
// presented. The next comparison starts a fresh round.
func (c *Coordinator) EndCompare(ctx context.Context, contestID, actor string) (*models.CompareSession, error) {
	now := time.Now().UTC()
	next, err := c.store.Transact(ctx, contestID, func(current *models.CompareSession) (*models.CompareSession, error) {
		return applyEnd(current, actor, now)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("compare round ended", "contest_id", contestID, "round_index", next.RoundIndex, "actor", actor)
	return next, nil
}

func validateStart(roundIndex int, settings models.CompareSettings, seats []models.SeatAssignment) error {
	if roundIndex < 1 {
		return &ValidationError{Field: "round_index", Reason: "must be at least 1"}
	}
	if settings.TargetSize <= 0 {
		return &ValidationError{Field: "target_size", Reason: "must be positive"}
	}
	switch settings.ScoreMode {
	case models.ScoreModeAll, models.ScoreModeTopOnly, models.ScoreModeTopWithSub:
	default:
		return &ValidationError{Field: "score_mode", Reason: "unknown mode " + settings.ScoreMode}
	}
	switch settings.VoteScope {
	case models.VoteScopeAll, models.VoteScopePreviousSelection:
	default:
		return &ValidationError{Field: "vote_scope", Reason: "unknown scope " + settings.VoteScope}
	}
	if len(seats) == 0 {
		return &ValidationError{Field: "seats", Reason: "at least one panel seat is required"}
	}
	seen := make(map[int]bool, len(seats))
	for _, seat := range seats {
		if seat.SeatIndex < 1 {
			return &ValidationError{Field: "seats", Reason: "seat index must be at least 1"}
		}
		if seen[seat.SeatIndex] {
			return &ValidationError{Field: "seats", Reason: "duplicate seat index"}
		}
		seen[seat.SeatIndex] = true
	}
	return nil
}
