// Package server exposes the engine over HTTP and WebSocket. It owns no
// rules: every request is turned into a lifecycle call or an Action and
// pushed through the store's commit loop.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tahsinhasem/MonopolyDeal/internal/game"
	"github.com/tahsinhasem/MonopolyDeal/internal/repository"
)

// Server handles the game HTTP surface.
type Server struct {
	store         repository.GameStore
	logger        *zap.Logger
	commitRetries int
}

// New creates a Server around a game store.
func New(store repository.GameStore, commitRetries int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{store: store, logger: logger, commitRetries: commitRetries}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", s.handleCreate)
	mux.HandleFunc("GET /games/{id}", s.handleGet)
	mux.HandleFunc("GET /games/code/{code}", s.handleGetByCode)
	mux.HandleFunc("POST /games/{id}/join", s.handleJoin)
	mux.HandleFunc("POST /games/{id}/start", s.handleStart)
	mux.HandleFunc("POST /games/{id}/actions", s.handleAction)
	mux.HandleFunc("GET /games/{id}/ws", s.handleWatch)
	return mux
}

type createRequest struct {
	PlayerName string `json:"playerName"`
}

type createResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	GameID   string `json:"gameId,omitempty"`
	GameCode string `json:"gameCode,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.PlayerName == "" {
		writeJSON(w, http.StatusBadRequest, createResponse{Error: "playerName is required"})
		return
	}
	playerID := uuid.NewString()
	state := game.NewGame(playerID, req.PlayerName)
	if err := s.store.Create(r.Context(), state); err != nil {
		s.logger.Error("failed to create game", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, createResponse{Error: "failed to create game"})
		return
	}
	s.logger.Info("game created",
		zap.String("game_id", state.ID),
		zap.String("game_code", state.Code),
	)
	writeJSON(w, http.StatusOK, createResponse{
		Success:  true,
		GameID:   state.ID,
		GameCode: state.Code,
		PlayerID: playerID,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeLoadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleGetByCode resolves a short join code to the full game state, so a
// client holding only the code a friend shared can find the game to join.
func (s *Server) handleGetByCode(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.LoadByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeLoadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type joinRequest struct {
	PlayerName string `json:"playerName"`
}

type joinResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
	Rejoined bool   `json:"rejoined,omitempty"`
}

// handleJoin seats a new player, or — when the display name matches an
// existing seat — rebinds that seat to a fresh identity so a disconnected
// player resumes with their hand, bank, and properties intact.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.PlayerName == "" {
		writeJSON(w, http.StatusBadRequest, joinResponse{Error: "playerName is required"})
		return
	}
	playerID := uuid.NewString()
	rejoined := false
	_, err := repository.Commit(r.Context(), s.store, r.PathValue("id"), s.commitRetries,
		func(state *game.GameState) (*game.GameState, error) {
			next := state.Clone()
			if existing, ok := next.PlayerByName(req.PlayerName); ok {
				rejoined = true
				return next, next.RebindPlayer(existing.ID, playerID)
			}
			return next, next.AddPlayer(playerID, req.PlayerName)
		})
	if err != nil {
		s.writeCommitError(w, err, func(msg string) any { return joinResponse{Error: msg} })
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{Success: true, PlayerID: playerID, Rejoined: rejoined})
}

type startRequest struct {
	PlayerID string `json:"playerId"`
}

type actionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !s.decode(w, r, &req) {
		return
	}
	_, err := repository.Commit(r.Context(), s.store, r.PathValue("id"), s.commitRetries,
		func(state *game.GameState) (*game.GameState, error) {
			next := state.Clone()
			return next, next.Start(req.PlayerID)
		})
	if err != nil {
		s.writeCommitError(w, err, func(msg string) any { return actionResponse{Error: msg} })
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{Success: true})
}

// handleAction submits one engine action. Illegal moves come back as
// success=false with the rejection reason; they are not HTTP errors.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var action game.Action
	if !s.decode(w, r, &action) {
		return
	}
	var rejection *game.Rejection
	committed, err := repository.Commit(r.Context(), s.store, r.PathValue("id"), s.commitRetries,
		func(state *game.GameState) (*game.GameState, error) {
			next, rej := game.Resolve(state, action)
			if rej != nil {
				rejection = rej
				return nil, nil
			}
			rejection = nil
			return next, nil
		})
	if err != nil {
		s.writeCommitError(w, err, func(msg string) any { return actionResponse{Error: msg} })
		return
	}
	if rejection != nil {
		writeJSON(w, http.StatusOK, actionResponse{
			Error: rejection.Reason,
			Code:  string(rejection.Code),
		})
		return
	}
	// Flip status once a winner is observable; game-over is a score
	// observation, not an engine phase.
	if winner, ok := committed.Winner(); ok && committed.Status == game.StatusPlaying {
		if _, err := repository.Commit(r.Context(), s.store, committed.ID, s.commitRetries,
			func(state *game.GameState) (*game.GameState, error) {
				next := state.Clone()
				next.Status = game.StatusFinished
				return next, nil
			}); err != nil {
			s.logger.Error("failed to mark game finished",
				zap.String("game_id", committed.ID),
				zap.Error(err),
			)
		} else {
			s.logger.Info("game finished",
				zap.String("game_id", committed.ID),
				zap.String("winner", winner.ID),
			)
		}
	}
	writeJSON(w, http.StatusOK, actionResponse{Success: true})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, actionResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, actionResponse{Error: "game not found"})
		return
	}
	s.logger.Error("failed to load game", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, actionResponse{Error: "internal error"})
}

func (s *Server) writeCommitError(w http.ResponseWriter, err error, body func(string) any) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, body("game not found"))
	case errors.Is(err, repository.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, body("conflicting update, retry"))
	default:
		writeJSON(w, http.StatusOK, body(err.Error()))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
