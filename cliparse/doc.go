// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: PostgreSQL connection string (required unless StoreType is memory)
  - StoreType: Session store backend, postgres or memory
  - OperatorKeySalt: Secret for operator key HMAC (required)
  - ChiefKeySalt: Secret for chief key HMAC (required)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Store type (postgres or memory)
	--operator-salt Operator key salt
	--chief-salt    Chief key salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	STORE_TYPE        → -t
	OPERATOR_KEY_SALT → --operator-salt
	CHIEF_KEY_SALT    → --chief-salt

CLI flags take precedence over environment variables.
*/
package cliparse
