// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the compareround API.

# Handler Types

CompareHandler carries the store, coordinator, and config dependencies
and is created via a constructor:

	compareHandler := handlers.NewCompareHandler(store, cfg)

# Round Operations

Operators drive the round lifecycle; force-confirm requires the
elevated chief key:

	POST /contests/{id}/compare/start         → StartCompare
	POST /contests/{id}/compare/confirm       → ConfirmCompare
	POST /contests/{id}/compare/force-confirm → ForceConfirmCompare (X-Chief-Key)
	POST /contests/{id}/compare/cancel        → CancelCompare
	POST /contests/{id}/compare/end           → EndCompare

Operator operations require the X-Operator-Key header.

# Read Side

	GET /contests/{id}/compare         → GetSession
	GET /contests/{id}/compare/tally   → GetTally (live leaderboard, recomputed)
	GET /contests/{id}/compare/history → GetHistory
	GET /contests/{id}/compare/watch   → WatchSession (websocket push)

# Error Mapping

Engine errors map onto statuses: validation → 400, missing session → 404,
phase/round/incomplete-vote conflicts → 409, contention exhaustion → 503.
A confirm whose audit mirror failed returns 200 with history_written
false and a warning; the confirm itself is committed.
*/
package handlers
