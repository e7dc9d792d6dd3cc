package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/evanofslack/pokerboard/internal/services"
	"github.com/evanofslack/pokerboard/internal/validation"
	"github.com/go-chi/chi/v5"
)

type GameHandler struct {
	sessions *services.SessionService
	board    *services.BoardService
}

func NewGameHandler(sessions *services.SessionService, board *services.BoardService) *GameHandler {
	return &GameHandler{
		sessions: sessions,
		board:    board,
	}
}

func (h *GameHandler) ProtectedRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.AddGame)
	return r
}

func (h *GameHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	var req models.AddGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate request
	if err := validation.Validate(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := h.sessions.AddGame(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrNoCompleteEntries) {
			writeErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to save game")
		return
	}

	h.board.Invalidate("game added")
	writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message":  "Game saved successfully",
		"sessions": sessions,
	})
}
