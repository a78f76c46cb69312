// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides key generation and validation for round authority.

# Keys

Two HMAC-derived, storage-free keys exist per contest:

  - Operator key: authorizes start, confirm, cancel, and end
  - Chief key: elevated authority, required for force-confirm

Both are HMAC-SHA256 of the contest id under separate salts, compared in
constant time:

	key := auth.GenerateOperatorKey(contestID, salt)
	err := auth.ValidateOperatorKey(contestID, key, salt)

# IDs and Hashing

GenerateID produces random hex identifiers; HashIP produces salted
one-way hashes of client addresses for audit metadata.
*/
package auth
