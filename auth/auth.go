// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidOperatorKey = errors.New("invalid operator key")
	ErrInvalidChiefKey    = errors.New("invalid chief key")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateOperatorKey creates an HMAC-based key authorizing round
// operations (start, confirm, cancel, end) on a contest.
// Deterministic and verifiable without storage.
func GenerateOperatorKey(contestID, salt string) string {
	return hmacKey(contestID, salt)
}

// ValidateOperatorKey checks the provided operator key for the contest
func ValidateOperatorKey(contestID, key, salt string) error {
	if !hmac.Equal([]byte(key), []byte(GenerateOperatorKey(contestID, salt))) {
		return ErrInvalidOperatorKey
	}
	return nil
}

// GenerateChiefKey creates the elevated-authority key for a contest.
// Only this key may force-confirm a round past incomplete votes; a
// separate salt keeps it underivable from the operator key.
func GenerateChiefKey(contestID, salt string) string {
	return hmacKey(contestID, salt)
}

// ValidateChiefKey checks the provided chief key for the contest
func ValidateChiefKey(contestID, key, salt string) error {
	if !hmac.Equal([]byte(key), []byte(GenerateChiefKey(contestID, salt))) {
		return ErrInvalidChiefKey
	}
	return nil
}

func hmacKey(contestID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(contestID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// HashIP creates a one-way hash of an IP address for audit metadata.
// Salted to prevent rainbow table attacks.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) is enough for correlation
	return hex.EncodeToString(sum[:8])
}
