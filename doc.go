// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the compareround API server.

Compareround is the comparison-judging consensus engine of a contest
console: it runs "compare rounds" - runoff votes among a panel of judges
that narrow a grade's finalists down to a top-N subset, possibly across
several sequential rounds.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3419 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string (unless -t memory)
  - OPERATOR_KEY_SALT (--operator-salt): Secret for operator key HMAC
  - CHIEF_KEY_SALT (--chief-salt): Secret for the elevated chief key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - STORE_TYPE (-t): Session store, postgres or memory (default: postgres)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - session: consensus engine (state machine, tally, top selection, coordinator)
  - store: shared session record (optimistic transactions, audit history, watch)
  - handlers: HTTP request handlers over the coordinator
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Operator and chief key generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
