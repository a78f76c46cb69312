// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Compare sessions: one JSONB document per contest, guarded by a version
-- column for compare-and-swap writes.
CREATE TABLE IF NOT EXISTS compare_session (
    contest_id TEXT PRIMARY KEY,
    doc JSONB NOT NULL,
    version BIGINT NOT NULL DEFAULT 1,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Round audit history: append-only, one row per confirmed round.
CREATE TABLE IF NOT EXISTS compare_history (
    contest_id TEXT NOT NULL,
    round_index INTEGER NOT NULL,
    entry JSONB NOT NULL,
    recorded_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (contest_id, round_index)
);

CREATE INDEX IF NOT EXISTS idx_compare_history_contest ON compare_history(contest_id);
`
