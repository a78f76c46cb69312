// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contestops/compareround/auth"
	"github.com/contestops/compareround/cliparse"
	"github.com/contestops/compareround/middleware"
	"github.com/contestops/compareround/models"
	"github.com/contestops/compareround/session"
	"github.com/contestops/compareround/store"
)

type CompareHandler struct {
	store store.SessionStore
	coord *session.Coordinator
	cfg   cliparse.Config
}

func NewCompareHandler(s store.SessionStore, cfg cliparse.Config) *CompareHandler {
	return &CompareHandler{store: s, coord: session.NewCoordinator(s), cfg: cfg}
}

// StartCompare handles POST /contests/:id/compare/start
func (h *CompareHandler) StartCompare(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	// Validate operator key
	operatorKey := r.Header.Get("X-Operator-Key")
	if err := auth.ValidateOperatorKey(contestID, operatorKey, h.cfg.OperatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
		return
	}

	var req models.StartCompareRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}

	result, err := h.coord.StartCompare(r.Context(), contestID, req.RoundIndex, req.Settings, req.Seats, req.Actor)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, result)
}

// ConfirmCompare handles POST /contests/:id/compare/confirm
func (h *CompareHandler) ConfirmCompare(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	operatorKey := r.Header.Get("X-Operator-Key")
	if err := auth.ValidateOperatorKey(contestID, operatorKey, h.cfg.OperatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
		return
	}

	var req models.ConfirmCompareRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}

	result, err := h.coord.ConfirmCompare(r.Context(), contestID, req.RoundIndex, req.SelectedPlayers, req.Actor, req.RequireComplete)
	h.writeConfirmResult(w, result, err)
}

// ForceConfirmCompare handles POST /contests/:id/compare/force-confirm
// Requires the elevated chief key; the audit entry is flagged forced.
func (h *CompareHandler) ForceConfirmCompare(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	chiefKey := r.Header.Get("X-Chief-Key")
	if err := auth.ValidateChiefKey(contestID, chiefKey, h.cfg.ChiefKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid chief key")
		return
	}

	var req models.ForceConfirmRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}

	// Overrides get an extra audit line with the caller's network origin.
	clientIP := middleware.GetClientIP(r)
	slog.Info("force-confirm requested",
		"contest_id", contestID,
		"round_index", req.RoundIndex,
		"actor", req.Actor,
		"ip_hash", auth.HashIP(clientIP, h.cfg.OperatorKeySalt),
	)

	result, err := h.coord.ForceConfirmCompare(r.Context(), contestID, req.RoundIndex, req.SelectedPlayers, req.Actor)
	h.writeConfirmResult(w, result, err)
}

// CancelCompare handles POST /contests/:id/compare/cancel
func (h *CompareHandler) CancelCompare(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	operatorKey := r.Header.Get("X-Operator-Key")
	if err := auth.ValidateOperatorKey(contestID, operatorKey, h.cfg.OperatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
		return
	}

	var req models.CancelCompareRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}

	result, err := h.coord.CancelCompare(r.Context(), contestID, req.Actor)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// EndCompare handles POST /contests/:id/compare/end
func (h *CompareHandler) EndCompare(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest id is required")
		return
	}

	operatorKey := r.Header.Get("X-Operator-Key")
	if err := auth.ValidateOperatorKey(contestID, operatorKey, h.cfg.OperatorKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid operator key")
		return
	}

	var req models.EndCompareRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Actor == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "actor is required")
		return
	}

	result, err := h.coord.EndCompare(r.Context(), contestID, req.Actor)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

func (h *CompareHandler) writeConfirmResult(w http.ResponseWriter, result session.ConfirmResult, err error) {
	var partial *session.PartialCommitError
	if errors.As(err, &partial) {
		// The round is confirmed; only the audit mirror is missing.
		// Surface it as a warning so the operator can reconcile.
		middleware.JSONResponse(w, http.StatusOK, models.ConfirmCompareResponse{
			Session:        *result.Session,
			HistoryWritten: false,
			Warning:        "round confirmed but audit history was not recorded; operator attention required",
		})
		return
	}
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConfirmCompareResponse{
		Session:        *result.Session,
		HistoryWritten: result.HistoryWritten,
	})
}

// writeEngineError maps engine error types onto HTTP statuses.
func (h *CompareHandler) writeEngineError(w http.ResponseWriter, err error) {
	var validation *session.ValidationError
	var phase *session.PhaseError
	var roundMismatch *session.RoundMismatchError
	var incomplete *session.IncompleteVoteError

	switch {
	case errors.As(err, &validation):
		middleware.ErrorResponse(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "No compare session for this contest")
	case errors.As(err, &phase):
		middleware.ErrorResponse(w, http.StatusConflict, phase.Error())
	case errors.As(err, &roundMismatch):
		middleware.ErrorResponse(w, http.StatusConflict, roundMismatch.Error())
	case errors.As(err, &incomplete):
		middleware.ErrorResponse(w, http.StatusConflict, incomplete.Error())
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Session is contended, retry shortly")
	default:
		slog.Error("compare operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
	}
}
