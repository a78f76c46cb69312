// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/contestops/compareround/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The console frontend is served from a different origin in dev.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchSession handles GET /contests/:id/compare/watch
// Upgrades to a websocket and pushes the current session followed by
// every state committed while the connection is open. Watchers are
// read-only; any frame they send other than a close is ignored.
func (h *CompareHandler) WatchSession(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		http.Error(w, "contest id is required", http.StatusBadRequest)
		return
	}

	// Subscribe before the initial read so no commit slips between them.
	updates, cancel := h.store.Subscribe(contestID)
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("watcher connected", "contest_id", contestID, "remote", r.RemoteAddr)

	// Read pump: discard inbound frames, detect disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial snapshot, if a session exists.
	if current, err := h.store.Get(r.Context(), contestID); err == nil {
		if err := conn.WriteJSON(current); err != nil {
			return
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to load session for watcher", "error", err)
		return
	}

	for {
		select {
		case state, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(state); err != nil {
				slog.Info("watcher disconnected", "contest_id", contestID)
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
