// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contestops/compareround/middleware"
	"github.com/contestops/compareround/models"
	"github.com/contestops/compareround/session"
	"github.com/contestops/compareround/store"
)

// GetSession handles GET /contests/:id/compare
func (h *CompareHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	current, err := h.store.Get(r.Context(), contestID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No compare session for this contest")
		return
	}
	if err != nil {
		slog.Error("failed to load session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, current)
}

// GetTally handles GET /contests/:id/compare/tally
// The leaderboard is always recomputed from the stored judge map; the
// derived tally and top set are never written back to the record.
func (h *CompareHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	current, err := h.store.Get(r.Context(), contestID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No compare session for this contest")
		return
	}
	if err != nil {
		slog.Error("failed to load session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}

	tally := session.Tally(current.Judges)

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		RoundIndex:       current.RoundIndex,
		TargetSize:       current.Settings.TargetSize,
		Tally:            tally,
		Top:              session.PickTop(tally, current.Settings.TargetSize),
		AllVotesComplete: session.AllVotesComplete(current.Judges),
	})
}

// GetHistory handles GET /contests/:id/compare/history
func (h *CompareHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	entries, err := h.store.History(r.Context(), contestID)
	if err != nil {
		slog.Error("failed to load history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.HistoryResponse{
		ContestID: contestID,
		Entries:   entries,
	})
}
