package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/evanofslack/pokerboard/internal/auth"
	"github.com/go-chi/chi/v5"
)

// GateHandler exchanges the shared table passcode for an access token. There
// are no user accounts; everyone at the table shares one passcode.
type GateHandler struct {
	passcodeHash string
	jwtManager   *auth.JWTManager
}

func NewGateHandler(passcodeHash string, jwtManager *auth.JWTManager) *GateHandler {
	return &GateHandler{
		passcodeHash: passcodeHash,
		jwtManager:   jwtManager,
	}
}

func (h *GateHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Unlock)
	return r
}

func (h *GateHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	// No hash configured means an open table; hand out a token for any
	// request so the middleware and the gate agree.
	if h.passcodeHash == "" {
		h.issueToken(w)
		return
	}

	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Passcode == "" {
		writeErrorResponse(w, http.StatusBadRequest, "Passcode is required")
		return
	}

	if err := auth.VerifyPasscode(req.Passcode, h.passcodeHash); err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, "Invalid passcode")
		return
	}

	h.issueToken(w)
}

func (h *GateHandler) issueToken(w http.ResponseWriter) {
	token, err := h.jwtManager.GenerateToken()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{
		"token": token,
	})
}
