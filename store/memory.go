// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/contestops/compareround/models"
)

// MemoryStore is an in-process SessionStore with the same
// compare-and-swap semantics as the Postgres store. Used for tests and
// for running the service without a database (-t memory).
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryDoc
	history  map[string][]models.HistoryEntry
	hub      *hub

	// BeforeCommit, when set, runs after the update function has been
	// applied but before the compare-and-swap commit. Tests use it to
	// inject contention and exercise the retry path.
	BeforeCommit func()

	// AppendHistoryErr, when set, makes AppendHistory fail. Tests use it
	// to exercise partial-commit reporting.
	AppendHistoryErr error
}

type memoryDoc struct {
	state   models.CompareSession
	version int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryDoc),
		history:  make(map[string][]models.HistoryEntry),
		hub:      newHub(),
	}
}

func (s *MemoryStore) Get(ctx context.Context, contestID string) (*models.CompareSession, error) {
	s.mu.Lock()
	doc, ok := s.sessions[contestID]
	s.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(&doc.state)
}

func (s *MemoryStore) Transact(ctx context.Context, contestID string, fn UpdateFn) (*models.CompareSession, error) {
	for attempt := 0; attempt < maxTransactAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.mu.Lock()
		doc, exists := s.sessions[contestID]
		s.mu.Unlock()

		var current *models.CompareSession
		var err error
		if exists {
			current, err = cloneSession(&doc.state)
			if err != nil {
				return nil, err
			}
		}

		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		committed, err := cloneSession(next)
		if err != nil {
			return nil, err
		}

		if s.BeforeCommit != nil {
			s.BeforeCommit()
		}

		s.mu.Lock()
		latest, nowExists := s.sessions[contestID]
		if nowExists != exists || (exists && latest.version != doc.version) {
			s.mu.Unlock()
			continue // lost the race, re-read and retry
		}
		s.sessions[contestID] = memoryDoc{state: *committed, version: doc.version + 1}
		s.mu.Unlock()

		s.hub.publish(contestID, *committed)
		return next, nil
	}
	return nil, ErrConflict
}

func (s *MemoryStore) AppendHistory(ctx context.Context, contestID string, entry models.HistoryEntry) error {
	if s.AppendHistoryErr != nil {
		return s.AppendHistoryErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.history[contestID] {
		if existing.RoundIndex == entry.RoundIndex {
			return nil // append-only: the first entry for a round wins
		}
	}
	s.history[contestID] = append(s.history[contestID], entry)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, contestID string) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	entries := append([]models.HistoryEntry(nil), s.history[contestID]...)
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RoundIndex < entries[j].RoundIndex
	})
	return entries, nil
}

func (s *MemoryStore) Subscribe(contestID string) (<-chan models.CompareSession, func()) {
	return s.hub.subscribe(contestID)
}

const maxTransactAttempts = 25

// cloneSession deep-copies a session through JSON so callers and the
// update function can never alias stored state.
func cloneSession(src *models.CompareSession) (*models.CompareSession, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("failed to clone session: %w", err)
	}
	var dst models.CompareSession
	if err := json.Unmarshal(raw, &dst); err != nil {
		return nil, fmt.Errorf("failed to clone session: %w", err)
	}
	return &dst, nil
}
