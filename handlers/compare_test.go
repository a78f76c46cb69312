// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/contestops/compareround/auth"
	"github.com/contestops/compareround/models"
	"github.com/contestops/compareround/store"
	"github.com/contestops/compareround/testutil"
)

func startRequestBody() models.StartCompareRequest {
	return models.StartCompareRequest{
		RoundIndex: 1,
		Settings:   testutil.DefaultSettings(2),
		Seats:      testutil.Seats(1, 2, 3),
		Actor:      "operator",
	}
}

func operatorHeaders(contestID string) map[string]string {
	cfg := testutil.GetTestConfig()
	return map[string]string{
		"X-Operator-Key": auth.GenerateOperatorKey(contestID, cfg.OperatorKeySalt),
	}
}

func chiefHeaders(contestID string) map[string]string {
	cfg := testutil.GetTestConfig()
	return map[string]string{
		"X-Chief-Key": auth.GenerateChiefKey(contestID, cfg.ChiefKeySalt),
	}
}

func TestStartCompareHandler(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/contests/c1/compare/start", startRequestBody(), operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	h.StartCompare(w, req)

	testutil.AssertStatus(t, w, 201)

	var result models.CompareSession
	testutil.AssertJSON(t, w, &result)
	if result.Phase != models.PhaseVoting || result.RoundIndex != 1 {
		t.Errorf("Unexpected started session: %+v", result)
	}
	if len(result.Judges) != 3 {
		t.Errorf("Expected 3 seats, got %d", len(result.Judges))
	}
}

func TestStartCompareRejectsBadKey(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/contests/c1/compare/start", startRequestBody(),
		map[string]string{"X-Operator-Key": "wrong"})
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	h.StartCompare(w, req)

	testutil.AssertStatus(t, w, 401)
}

func TestStartCompareRejectsBadSettings(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	body := startRequestBody()
	body.Settings.TargetSize = 0

	req := testutil.MakeRequest("POST", "/contests/c1/compare/start", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	h.StartCompare(w, req)

	testutil.AssertStatus(t, w, 400)
}

func TestConfirmCompareHandler(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	testutil.StartVotingSession(t, s, "c1")
	testutil.SetJudgeVote(t, s, "c1", 1, models.VoteCompleted, testutil.Player(101))
	testutil.SetJudgeVote(t, s, "c1", 2, models.VoteCompleted, testutil.Player(101))
	testutil.SetJudgeVote(t, s, "c1", 3, models.VoteCompleted, testutil.Player(102))

	body := models.ConfirmCompareRequest{
		RoundIndex:      1,
		SelectedPlayers: []models.PlayerRef{testutil.Player(101), testutil.Player(102)},
		RequireComplete: true,
		Actor:           "operator",
	}
	req := testutil.MakeRequest("POST", "/contests/c1/compare/confirm", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	h.ConfirmCompare(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.ConfirmCompareResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Session.Phase != models.PhaseInProgress {
		t.Errorf("Expected in_progress, got %s", resp.Session.Phase)
	}
	if !resp.HistoryWritten {
		t.Error("Expected history_written true")
	}
	if resp.Warning != "" {
		t.Errorf("Unexpected warning: %s", resp.Warning)
	}
}

func TestConfirmCompareConflictStatuses(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	// No session yet: 404
	body := models.ConfirmCompareRequest{RoundIndex: 1, Actor: "operator"}
	req := testutil.MakeRequest("POST", "/contests/c1/compare/confirm", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()
	h.ConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 404)

	// Incomplete votes with require_complete: 409
	testutil.StartVotingSession(t, s, "c1")
	body.RequireComplete = true
	req = testutil.MakeRequest("POST", "/contests/c1/compare/confirm", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.ConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 409)

	// Round mismatch: 409
	body.RequireComplete = false
	body.RoundIndex = 4
	req = testutil.MakeRequest("POST", "/contests/c1/compare/confirm", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.ConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 409)

	// Canceled session: 409 phase violation
	cancelBody := models.CancelCompareRequest{Actor: "operator"}
	req = testutil.MakeRequest("POST", "/contests/c1/compare/cancel", cancelBody, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.CancelCompare(w, req)
	testutil.AssertStatus(t, w, 200)

	body.RoundIndex = 1
	req = testutil.MakeRequest("POST", "/contests/c1/compare/confirm", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.ConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 409)
}

func TestForceConfirmRequiresChiefKey(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())
	cfg := testutil.GetTestConfig()

	testutil.StartVotingSession(t, s, "c1")

	body := models.ForceConfirmRequest{
		RoundIndex:      1,
		SelectedPlayers: []models.PlayerRef{testutil.Player(101)},
		Actor:           "chief-judge",
	}

	// Operator key is not enough
	req := testutil.MakeRequest("POST", "/contests/c1/compare/force-confirm", body,
		map[string]string{"X-Chief-Key": auth.GenerateOperatorKey("c1", cfg.OperatorKeySalt)})
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()
	h.ForceConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 401)

	// Chief key succeeds despite zero completed votes
	req = testutil.MakeRequest("POST", "/contests/c1/compare/force-confirm", body, chiefHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.ForceConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.ConfirmCompareResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Session.History[1].Forced {
		t.Error("Expected forced history entry")
	}
}

func TestConfirmPartialCommitWarning(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	testutil.StartVotingSession(t, s, "c1")
	s.AppendHistoryErr = store.ErrConflict

	body := models.ConfirmCompareRequest{
		RoundIndex:      1,
		SelectedPlayers: []models.PlayerRef{testutil.Player(101)},
		Actor:           "operator",
	}
	req := testutil.MakeRequest("POST", "/contests/c1/compare/confirm", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	h.ConfirmCompare(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.ConfirmCompareResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.HistoryWritten {
		t.Error("Expected history_written false on partial commit")
	}
	if resp.Warning == "" {
		t.Error("Expected operator warning on partial commit")
	}
	if resp.Session.Phase != models.PhaseInProgress {
		t.Error("Expected the confirm committed despite the mirror failure")
	}
}

func TestCancelCompareHandler(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	testutil.StartVotingSession(t, s, "c1")

	body := models.CancelCompareRequest{Actor: "operator"}
	req := testutil.MakeRequest("POST", "/contests/c1/compare/cancel", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	h.CancelCompare(w, req)

	testutil.AssertStatus(t, w, 200)

	var result models.CompareSession
	testutil.AssertJSON(t, w, &result)
	if result.Phase != models.PhaseCanceled {
		t.Errorf("Expected canceled, got %s", result.Phase)
	}
}

func TestEndCompareHandler(t *testing.T) {
	s := store.NewMemoryStore()
	h := NewCompareHandler(s, testutil.GetTestConfig())

	testutil.StartVotingSession(t, s, "c1")

	// End from voting is a phase violation
	body := models.EndCompareRequest{Actor: "operator"}
	req := testutil.MakeRequest("POST", "/contests/c1/compare/end", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()
	h.EndCompare(w, req)
	testutil.AssertStatus(t, w, 409)

	// Confirm, then end succeeds
	confirm := models.ConfirmCompareRequest{
		RoundIndex:      1,
		SelectedPlayers: []models.PlayerRef{testutil.Player(101)},
		Actor:           "operator",
	}
	req = testutil.MakeRequest("POST", "/contests/c1/compare/confirm", confirm, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.ConfirmCompare(w, req)
	testutil.AssertStatus(t, w, 200)

	req = testutil.MakeRequest("POST", "/contests/c1/compare/end", body, operatorHeaders("c1"))
	req.SetPathValue("id", "c1")
	w = httptest.NewRecorder()
	h.EndCompare(w, req)
	testutil.AssertStatus(t, w, 200)

	var result models.CompareSession
	testutil.AssertJSON(t, w, &result)
	if result.Phase != models.PhaseEnded {
		t.Errorf("Expected ended, got %s", result.Phase)
	}
}
