// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/contestops/compareround/models"
)

// PostgresStore keeps each contest's session as a single JSONB document
// guarded by a version column. Every write is a compare-and-swap on that
// version, so concurrent judge clients and the round operator serialize
// through the database without locks held across requests.
type PostgresStore struct {
	db  *sql.DB
	hub *hub
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, hub: newHub()}
}

func (s *PostgresStore) Get(ctx context.Context, contestID string) (*models.CompareSession, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM compare_session WHERE contest_id = $1
	`, contestID).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.CompareSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session document: %w", err)
	}
	return &session, nil
}

func (s *PostgresStore) Transact(ctx context.Context, contestID string, fn UpdateFn) (*models.CompareSession, error) {
	for attempt := 0; attempt < maxTransactAttempts; attempt++ {
		var raw []byte
		var version int64
		err := s.db.QueryRowContext(ctx, `
			SELECT doc, version FROM compare_session WHERE contest_id = $1
		`, contestID).Scan(&raw, &version)

		exists := true
		if err == sql.ErrNoRows {
			exists = false
		} else if err != nil {
			return nil, fmt.Errorf("failed to read session: %w", err)
		}

		var current *models.CompareSession
		if exists {
			current = &models.CompareSession{}
			if err := json.Unmarshal(raw, current); err != nil {
				return nil, fmt.Errorf("failed to decode session document: %w", err)
			}
		}

		next, err := fn(current)
		if err != nil {
			return nil, err
		}

		doc, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode session document: %w", err)
		}

		var res sql.Result
		if exists {
			res, err = s.db.ExecContext(ctx, `
				UPDATE compare_session
				SET doc = $2, version = version + 1
				WHERE contest_id = $1 AND version = $3
			`, contestID, doc, version)
		} else {
			res, err = s.db.ExecContext(ctx, `
				INSERT INTO compare_session (contest_id, doc, version)
				VALUES ($1, $2, 1)
				ON CONFLICT (contest_id) DO NOTHING
			`, contestID, doc)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write session: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check session write: %w", err)
		}
		if affected == 0 {
			continue // someone else committed first, re-read and retry
		}

		s.hub.publish(contestID, *next)
		return next, nil
	}
	return nil, ErrConflict
}

func (s *PostgresStore) AppendHistory(ctx context.Context, contestID string, entry models.HistoryEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	// Append-only: the first entry written for a round is final.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compare_history (contest_id, round_index, entry)
		VALUES ($1, $2, $3)
		ON CONFLICT (contest_id, round_index) DO NOTHING
	`, contestID, entry.RoundIndex, doc)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, contestID string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry FROM compare_history
		WHERE contest_id = $1
		ORDER BY round_index
	`, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		var entry models.HistoryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Subscribe(contestID string) (<-chan models.CompareSession, func()) {
	return s.hub.subscribe(contestID)
}
