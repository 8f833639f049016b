package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/teamdeck/attention-engine/internal/attention"
	"github.com/teamdeck/attention-engine/internal/model"
)

// handleFeed computes the attention feed for the authenticated user.
// window_hours is optional, defaults to the engine's standard lookback, and
// is capped by server.max_window_hours.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	windowHours := attention.DefaultWindowHours
	if raw := r.URL.Query().Get("window_hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeValidationError(w, "window_hours must be a positive integer")
			return
		}
		windowHours = n
	}
	if s.maxWindowHours > 0 && windowHours > s.maxWindowHours {
		windowHours = s.maxWindowHours
	}

	feed, err := s.engine.Compute(r.Context(), userID(r), windowHours)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

type mutationRequest struct {
	AttentionID  string `json:"attention_id"`
	SnoozedUntil string `json:"snoozed_until,omitempty"`
}

func decodeMutation(w http.ResponseWriter, r *http.Request) (mutationRequest, bool) {
	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body")
		return req, false
	}
	if req.AttentionID == "" {
		writeValidationError(w, "attention_id is required")
		return req, false
	}
	return req, true
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	s.setReadState(w, r, model.ReadStateAcknowledged)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	s.setReadState(w, r, model.ReadStateRead)
}

func (s *Server) setReadState(w http.ResponseWriter, r *http.Request, state model.ReadState) {
	req, ok := decodeMutation(w, r)
	if !ok {
		return
	}
	if err := s.overlay.SetReadState(r.Context(), userID(r), req.AttentionID, state, s.nowFunc()); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSnooze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMutation(w, r)
	if !ok {
		return
	}
	if req.SnoozedUntil == "" {
		writeValidationError(w, "snoozed_until is required")
		return
	}
	until, err := time.Parse(time.RFC3339, req.SnoozedUntil)
	if err != nil {
		writeValidationError(w, "snoozed_until must be RFC3339")
		return
	}
	now := s.nowFunc()
	if !until.After(now) {
		writeValidationError(w, "snoozed_until must be in the future")
		return
	}
	if err := s.overlay.Snooze(r.Context(), userID(r), req.AttentionID, until, now); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMutation(w, r)
	if !ok {
		return
	}
	if err := s.overlay.Dismiss(r.Context(), userID(r), req.AttentionID, s.nowFunc()); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.overlay.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
