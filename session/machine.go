// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"time"

	"github.com/contestops/compareround/models"
)

// Phase transitions. Each function is a pure (oldState) -> newState step
// handed to SessionStore.Transact, which may invoke it more than once
// under contention. No I/O, no logging, no clock reads in here: every
// varying input (timestamps, entry ids) is passed in so repeated
// invocations produce identical output.

type startParams struct {
	contestID  string
	roundIndex int
	settings   models.CompareSettings
	seats      []models.SeatAssignment
	actor      string
	now        time.Time
}

// applyStart seeds a fresh voting round. No phase precondition: start is
// an idempotent reset. History survives the reset; judges and the
// selection do not.
func applyStart(current *models.CompareSession, p startParams) (*models.CompareSession, error) {
	judges := make(map[int]models.JudgeVote, len(p.seats))
	for _, seat := range p.seats {
		judges[seat.SeatIndex] = models.JudgeVote{
			SeatIndex:       seat.SeatIndex,
			JudgeID:         seat.JudgeID,
			VoteStatus:      models.VoteNotStarted,
			SelectedPlayers: []models.PlayerRef{},
		}
	}

	next := &models.CompareSession{
		ContestID:     p.contestID,
		RoundIndex:    p.roundIndex,
		Phase:         models.PhaseVoting,
		Settings:      p.settings,
		Judges:        judges,
		LastUpdatedAt: p.now,
		UpdatedBy:     p.actor,
		Version:       1,
	}
	if current != nil {
		next.Version = current.Version + 1
		next.History = current.History
	}
	return next, nil
}

type confirmParams struct {
	roundIndex      int
	selected        []models.PlayerRef
	actor           string
	forced          bool
	requireComplete bool
	entryID         string
	now             time.Time
}

// applyConfirm locks in the selected players and flips the session to
// in_progress, recording the round's history entry in the same document
// write so the phase flip and its audit record commit atomically.
func applyConfirm(current *models.CompareSession, p confirmParams) (*models.CompareSession, error) {
	if current == nil {
		return nil, errNoSession
	}
	op := "confirm"
	if p.forced {
		op = "force-confirm"
	}
	if current.Phase != models.PhaseVoting {
		return nil, &PhaseError{Op: op, Phase: current.Phase}
	}
	if current.RoundIndex != p.roundIndex {
		return nil, &RoundMismatchError{Requested: p.roundIndex, Current: current.RoundIndex}
	}
	if p.requireComplete && !AllVotesComplete(current.Judges) {
		return nil, &IncompleteVoteError{
			Completed: countCompleted(current.Judges),
			Total:     len(current.Judges),
		}
	}

	next := *current
	next.Phase = models.PhaseInProgress
	next.SelectedPlayers = dedupPlayers(p.selected)
	next.Version = current.Version + 1
	next.LastUpdatedAt = p.now
	next.UpdatedBy = p.actor

	entry := models.HistoryEntry{
		EntryID:         p.entryID,
		RoundIndex:      current.RoundIndex,
		Phase:           models.PhaseInProgress,
		SelectedPlayers: next.SelectedPlayers,
		Forced:          p.forced,
		DecidedBy:       p.actor,
		DecidedAt:       p.now,
	}

	history := make(map[int]models.HistoryEntry, len(current.History)+1)
	for round, existing := range current.History {
		history[round] = existing
	}
	if _, exists := history[current.RoundIndex]; !exists {
		history[current.RoundIndex] = entry
	}
	next.History = history

	return &next, nil
}

// applyCancel aborts a voting round. The session keeps its round index;
// re-entry is a fresh start.
func applyCancel(current *models.CompareSession, actor string, now time.Time) (*models.CompareSession, error) {
	if current == nil {
		return nil, errNoSession
	}
	if current.Phase != models.PhaseVoting {
		return nil, &PhaseError{Op: "cancel", Phase: current.Phase}
	}

	next := *current
	next.Phase = models.PhaseCanceled
	next.SelectedPlayers = nil
	next.Version = current.Version + 1
	next.LastUpdatedAt = now
	next.UpdatedBy = actor
	return &next, nil
}

// applyEnd closes out a confirmed round. Ended is terminal: the next
// comparison is a new start with an incremented round index.
func applyEnd(current *models.CompareSession, actor string, now time.Time) (*models.CompareSession, error) {
	if current == nil {
		return nil, errNoSession
	}
	if current.Phase != models.PhaseInProgress {
		return nil, &PhaseError{Op: "end", Phase: current.Phase}
	}

	next := *current
	next.Phase = models.PhaseEnded
	next.Version = current.Version + 1
	next.LastUpdatedAt = now
	next.UpdatedBy = actor
	return &next, nil
}
