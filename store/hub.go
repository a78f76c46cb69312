// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/contestops/compareround/models"
)

// hub fans committed session states out to subscribers. Channels are
// buffered; a full channel drops the oldest pending state so a stalled
// watcher can never block a commit.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[string]chan models.CompareSession
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[string]chan models.CompareSession)}
}

func (h *hub) subscribe(contestID string) (<-chan models.CompareSession, func()) {
	ch := make(chan models.CompareSession, 8)
	id := uuid.NewString()

	h.mu.Lock()
	if h.subs[contestID] == nil {
		h.subs[contestID] = make(map[string]chan models.CompareSession)
	}
	h.subs[contestID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subs[contestID]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subs, contestID)
			}
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

func (h *hub) publish(contestID string, state models.CompareSession) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[contestID] {
		for {
			select {
			case ch <- state:
			default:
				// Drop the oldest pending state and retry once.
				select {
				case <-ch:
					continue
				default:
				}
			}
			break
		}
	}
}
