package handlers

import (
	"net/http"

	"github.com/evanofslack/pokerboard/internal/leaderboard"
	"github.com/evanofslack/pokerboard/internal/services"
	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	board *services.BoardService
}

func NewLeaderboardHandler(board *services.BoardService) *LeaderboardHandler {
	return &LeaderboardHandler{board: board}
}

func (h *LeaderboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetBoard)
	return r
}

// GetBoard serves the ranked board for the requested view. Unknown parameter
// values fall back to defaults rather than erroring, so a stale frontend
// never breaks the page.
func (h *LeaderboardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := services.BoardParams{
		TimeRange: leaderboard.ParseTimeRange(q.Get("range")),
		Query:     q.Get("q"),
		SortBy:    leaderboard.ParseSortKey(q.Get("sort")),
		Filter:    leaderboard.ParseCategory(q.Get("filter")),
	}

	view, err := h.board.Build(r.Context(), params)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to build leaderboard")
		return
	}

	writeJSONResponse(w, http.StatusOK, view)
}
