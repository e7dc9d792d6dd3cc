package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/evanofslack/pokerboard/internal/database"
	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/evanofslack/pokerboard/internal/playerstats"
	"github.com/evanofslack/pokerboard/internal/services"
	"github.com/evanofslack/pokerboard/internal/storage"
	"github.com/evanofslack/pokerboard/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxPhotoBytes = 5 << 20 // 5 MB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type PlayerHandler struct {
	players  *services.PlayerService
	sessions *services.SessionService
	board    *services.BoardService
	photos   *storage.SpacesService
}

func NewPlayerHandler(players *services.PlayerService, sessions *services.SessionService, board *services.BoardService, photos *storage.SpacesService) *PlayerHandler {
	return &PlayerHandler{
		players:  players,
		sessions: sessions,
		board:    board,
		photos:   photos,
	}
}

// Routes mounts reads openly and mutations behind the gate middleware.
func (h *PlayerHandler) Routes(gate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Read-only routes (no gate required)
	r.Get("/", h.ListPlayers)
	r.Get("/{playerID}", h.GetPlayer)
	r.Get("/{playerID}/report", h.GetReport)

	// Mutations (gate required)
	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Post("/", h.CreatePlayer)
		r.Put("/{playerID}", h.UpdatePlayer)
		r.Delete("/{playerID}", h.DeletePlayer)
		r.Post("/{playerID}/photo", h.UploadPhoto)
	})

	return r
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.ListPlayers(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to list players")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"players": players,
	})
}

func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayerID(w, r)
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(r.Context(), playerID)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	writeJSONResponse(w, http.StatusOK, player)
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate request
	if err := validation.Validate(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := h.players.CreatePlayer(r.Context(), strings.TrimSpace(req.Name), req.PhotoURL)
	if err != nil {
		if database.IsUniqueConstraintError(err) {
			writeErrorResponse(w, http.StatusConflict, database.GetErrorMessage(err))
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to create player")
		return
	}

	h.board.Invalidate("player created")
	writeJSONResponse(w, http.StatusCreated, player)
}

func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayerID(w, r)
	if !ok {
		return
	}

	var req models.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate request
	if err := validation.Validate(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := h.players.UpdatePlayer(r.Context(), playerID, strings.TrimSpace(req.Name), req.PhotoURL)
	if err != nil {
		if database.IsUniqueConstraintError(err) {
			writeErrorResponse(w, http.StatusConflict, database.GetErrorMessage(err))
			return
		}
		writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	h.board.Invalidate("player updated")
	writeJSONResponse(w, http.StatusOK, player)
}

func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayerID(w, r)
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(r.Context(), playerID)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	if err := h.players.DeletePlayer(r.Context(), playerID); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The roster row is gone either way; a leaked photo object is not worth
	// failing the request over.
	if h.photos != nil && player.PhotoURL != nil {
		if err := h.photos.DeletePhoto(r.Context(), *player.PhotoURL); err != nil {
			slog.Warn("Failed to delete player photo", "player_id", playerID, "error", err)
		}
	}

	h.board.Invalidate("player deleted")
	writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Player deleted successfully",
	})
}

func (h *PlayerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "Photo storage is not configured")
		return
	}

	playerID, ok := parsePlayerID(w, r)
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(r.Context(), playerID)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Photo too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Failed to read photo")
		return
	}

	contentType := http.DetectContentType(data)
	if !allowedPhotoTypes[contentType] {
		writeErrorResponse(w, http.StatusBadRequest, "Photo must be a JPEG, PNG, WebP or GIF image")
		return
	}

	photoURL, err := h.photos.UploadPhoto(r.Context(), data, filepath.Ext(header.Filename), contentType)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	oldPhotoURL := player.PhotoURL
	player, err = h.players.UpdatePlayer(r.Context(), playerID, player.Name, &photoURL)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Row already points at the new photo; an orphaned old object is only
	// worth a warning.
	if oldPhotoURL != nil {
		if err := h.photos.DeletePhoto(r.Context(), *oldPhotoURL); err != nil {
			slog.Warn("Failed to delete replaced photo", "player_id", playerID, "error", err)
		}
	}

	h.board.Invalidate("player photo updated")
	writeJSONResponse(w, http.StatusOK, player)
}

func (h *PlayerHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayerID(w, r)
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(r.Context(), playerID)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	sessions, err := h.sessions.ListByPlayer(r.Context(), playerID)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}

	writeJSONResponse(w, http.StatusOK, playerstats.BuildReport(*player, sessions))
}

func parsePlayerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "playerID")
	if err := validation.ValidateUUID(raw); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid player ID")
		return uuid.Nil, false
	}
	playerID, err := uuid.Parse(raw)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid player ID")
		return uuid.Nil, false
	}
	return playerID, true
}
