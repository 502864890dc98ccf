package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/traderoyale/engine/internal/domain"
	"github.com/traderoyale/engine/internal/modules/leaderboard"
	"github.com/traderoyale/engine/internal/session"
)

// handleStartGame starts a fresh game, replacing any running one.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	s.session.Start(time.Now())
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleEndGame ends the running game immediately.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	s.session.End()
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleNextRound advances to the next round without waiting for the clock.
func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request) {
	s.session.AdvanceRound(time.Now())
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleResumeGame unpauses a restored or paused game. Games that are over
// or out of round time cannot resume; the response state says which.
func (s *Server) handleResumeGame(w http.ResponseWriter, r *http.Request) {
	s.session.Resume()
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleGameState returns a snapshot of the current game.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

type tradeRequest struct {
	AssetID string  `json:"asset_id"`
	Side    string  `json:"side"`
	Units   float64 `json:"units"`
}

type tradeResponse struct {
	Accepted bool             `json:"accepted"`
	Reason   string           `json:"reason,omitempty"`
	State    domain.GameState `json:"state"`
}

// handleTrade executes a trade intent. Validation rejections are not server
// errors: the response carries the reason and the unchanged state.
func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	side, err := domain.ParseTradeSide(req.Side)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.session.SubmitTrade(req.AssetID, side, req.Units, time.Now())
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, tradeResponse{
			Accepted: false,
			Reason:   err.Error(),
			State:    state,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, tradeResponse{
		Accepted: true,
		State:    state,
	})
}

type saveResponse struct {
	SessionID string `json:"session_id"`
}

// handleSaveGame snapshots the running game for later restore.
func (s *Server) handleSaveGame(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		s.writeError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	id := uuid.New().String()
	if err := s.sessions.Save(id, s.session.Snapshot(), time.Now()); err != nil {
		s.log.Error().Err(err).Msg("Failed to save session")
		s.writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	s.writeJSON(w, http.StatusOK, saveResponse{SessionID: id})
}

// handleRestoreGame loads a saved snapshot into the engine. The restored
// game comes back paused.
func (s *Server) handleRestoreGame(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		s.writeError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	state, err := s.sessions.Load(id)
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "saved session not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("session_id", id).Msg("Failed to load session")
		s.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	s.session.Restore(state)
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleListSessions lists saved games, newest first.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		s.writeError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}

	saved, err := s.sessions.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list sessions")
		s.writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if saved == nil {
		saved = []session.Saved{}
	}

	s.writeJSON(w, http.StatusOK, saved)
}

// handleLeaderboard returns the top final scores.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	scores, err := s.leaderboard.Top(10)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to query leaderboard")
		s.writeError(w, http.StatusInternalServerError, "failed to query leaderboard")
		return
	}
	if scores == nil {
		scores = []leaderboard.Score{}
	}

	s.writeJSON(w, http.StatusOK, scores)
}

// handleAchievements returns the achievements unlocked this game.
func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.achievements.Unlocked())
}
