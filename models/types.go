package models

import "time"

// Session phase constants
const (
	PhaseIdle       = "idle"
	PhaseVoting     = "voting"
	PhaseInProgress = "in_progress"
	PhaseEnded      = "ended"
	PhaseCanceled   = "canceled"
)

// Score mode constants
const (
	ScoreModeAll        = "all"
	ScoreModeTopOnly    = "top_only"
	ScoreModeTopWithSub = "top_with_sub"
)

// Vote scope constants
const (
	VoteScopeAll               = "all"
	VoteScopePreviousSelection = "previous_round_selection"
)

// Judge vote status constants
const (
	VoteNotStarted = "not_started"
	VoteInProgress = "in_progress"
	VoteCompleted  = "completed"
)

// Domain types

// PlayerRef identifies a player. Identity is the (number, uid) pair:
// player numbers can collide across grades, so both fields are compared
// when deduplicating.
type PlayerRef struct {
	PlayerNumber int     `json:"player_number"`
	PlayerUID    *string `json:"player_uid,omitempty"`
}

// CompareSettings is fixed at start and read-only for the rest of the round.
type CompareSettings struct {
	TargetSize int    `json:"target_size"`
	ScoreMode  string `json:"score_mode"`
	VoteScope  string `json:"vote_scope"`
}

// JudgeVote is one panel seat's entry in the session. Seats are keyed by
// index, not judge identity, so a judge re-logging-in under a new account
// does not create a duplicate seat.
type JudgeVote struct {
	SeatIndex       int         `json:"seat_index"`
	JudgeID         *string     `json:"judge_id,omitempty"`
	VoteStatus      string      `json:"vote_status"`
	SelectedPlayers []PlayerRef `json:"selected_players"`
}

// SeatAssignment describes one seat of the panel roster handed to start.
type SeatAssignment struct {
	SeatIndex int     `json:"seat_index"`
	JudgeID   *string `json:"judge_id,omitempty"`
}

// HistoryEntry is an immutable snapshot of a confirmed round. Once written
// for a round index it is never overwritten.
type HistoryEntry struct {
	EntryID         string      `json:"entry_id"`
	RoundIndex      int         `json:"round_index"`
	Phase           string      `json:"phase"`
	SelectedPlayers []PlayerRef `json:"selected_players"`
	Forced          bool        `json:"forced"`
	DecidedBy       string      `json:"decided_by"`
	DecidedAt       time.Time   `json:"decided_at"`
}

// CompareSession is the shared session record, one active instance per
// contest. All coordination between concurrent judge clients and the round
// operator happens through this document.
type CompareSession struct {
	ContestID       string               `json:"contest_id"`
	RoundIndex      int                  `json:"round_index"`
	Phase           string               `json:"phase"`
	Settings        CompareSettings      `json:"settings"`
	Judges          map[int]JudgeVote    `json:"judges"`
	SelectedPlayers []PlayerRef          `json:"selected_players,omitempty"`
	Version         int64                `json:"version"`
	LastUpdatedAt   time.Time            `json:"last_updated_at"`
	UpdatedBy       string               `json:"updated_by"`
	History         map[int]HistoryEntry `json:"history,omitempty"`
}

// VoteTallyEntry is a derived per-player vote count. Never persisted;
// always recomputed from the judge map.
type VoteTallyEntry struct {
	Player     PlayerRef `json:"player"`
	VotedCount int       `json:"voted_count"`
}

// Request types

type StartCompareRequest struct {
	RoundIndex int              `json:"round_index"`
	Settings   CompareSettings  `json:"settings"`
	Seats      []SeatAssignment `json:"seats"`
	Actor      string           `json:"actor"`
}

type ConfirmCompareRequest struct {
	RoundIndex      int         `json:"round_index"`
	SelectedPlayers []PlayerRef `json:"selected_players"`
	RequireComplete bool        `json:"require_complete"`
	Actor           string      `json:"actor"`
}

type ForceConfirmRequest struct {
	RoundIndex      int         `json:"round_index"`
	SelectedPlayers []PlayerRef `json:"selected_players"`
	Actor           string      `json:"actor"`
}

type CancelCompareRequest struct {
	Actor string `json:"actor"`
}

type EndCompareRequest struct {
	Actor string `json:"actor"`
}

// Response types

type ConfirmCompareResponse struct {
	Session        CompareSession `json:"session"`
	HistoryWritten bool           `json:"history_written"`
	Warning        string         `json:"warning,omitempty"`
}

type TallyResponse struct {
	RoundIndex       int              `json:"round_index"`
	TargetSize       int              `json:"target_size"`
	Tally            []VoteTallyEntry `json:"tally"`
	Top              []VoteTallyEntry `json:"top"`
	AllVotesComplete bool             `json:"all_votes_complete"`
}

type HistoryResponse struct {
	ContestID string         `json:"contest_id"`
	Entries   []HistoryEntry `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
