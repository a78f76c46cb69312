// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema for the session store.

# Tables

  - compare_session: one JSONB document per contest with a version column
    for compare-and-swap writes
  - compare_history: append-only audit rows keyed by (contest_id, round_index)

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
		// ...
	}

CreateSchema is idempotent; all DDL uses IF NOT EXISTS.
*/
package db
