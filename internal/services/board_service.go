package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/evanofslack/pokerboard/internal/leaderboard"
	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/go-redis/redis/v8"
)

const (
	boardCachePrefix = "board:"
	boardCacheTTL    = 5 * time.Minute
)

// Notifier pushes a board-changed signal to connected dashboards.
type Notifier interface {
	BoardUpdated(generation uint64)
}

// PlayerSource and SessionSource are the reads the board needs for a rebuild.
// PlayerService and SessionService satisfy them.
type PlayerSource interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
}

type SessionSource interface {
	ListSessions(ctx context.Context, cutoff *models.Date) ([]models.Session, error)
}

// BoardParams are the view parameters for one leaderboard request.
type BoardParams struct {
	TimeRange leaderboard.TimeRange
	Query     string
	SortBy    leaderboard.SortKey
	Filter    leaderboard.Category
}

// BoardView is a fully computed leaderboard response.
type BoardView struct {
	Rows       []leaderboard.Row   `json:"rows"`
	Summary    leaderboard.Summary `json:"summary"`
	Generation uint64              `json:"generation"`
}

// BoardService is the bridge between mutations and the pure aggregation
// core. There is no incremental update path: every build re-fetches players
// and sessions and recomputes from scratch. A monotonic generation counter
// tags each build cycle; a cycle that raced with a mutation is never cached,
// so stale data cannot shadow a newer write.
type BoardService struct {
	players    PlayerSource
	sessions   SessionSource
	cache      *redis.Client
	notifier   Notifier
	generation atomic.Uint64
	now        func() time.Time
}

// NewBoardService creates the board service. cache and notifier may be nil;
// the board then just computes on every request and pushes nothing.
func NewBoardService(players PlayerSource, sessions SessionSource, cache *redis.Client, notifier Notifier) *BoardService {
	return &BoardService{
		players:  players,
		sessions: sessions,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// Build resolves the time window, fetches fresh data and computes the
// leaderboard. The summary is always derived from the unfiltered row set.
func (bs *BoardService) Build(ctx context.Context, params BoardParams) (*BoardView, error) {
	gen := bs.generation.Load()

	if view := bs.fromCache(ctx, gen, params); view != nil {
		return view, nil
	}

	cutoff := leaderboard.ResolveCutoff(params.TimeRange, bs.now())

	// A failed fetch serves an empty board for this cycle instead of an
	// error page; the next invalidation or request retries naturally.
	players, err := bs.players.ListPlayers(ctx)
	if err != nil {
		slog.Error("Board build fetch failed", "error", err)
		return &BoardView{Rows: []leaderboard.Row{}, Generation: gen}, nil
	}
	sessions, err := bs.sessions.ListSessions(ctx, cutoff)
	if err != nil {
		slog.Error("Board build fetch failed", "error", err)
		return &BoardView{Rows: []leaderboard.Row{}, Generation: gen}, nil
	}

	rows := leaderboard.BuildRows(players, sessions)
	view := &BoardView{
		Rows: leaderboard.Apply(rows, leaderboard.Options{
			Query:  params.Query,
			SortBy: params.SortBy,
			Filter: params.Filter,
		}),
		Summary:    leaderboard.Summarize(rows, sessions),
		Generation: gen,
	}

	// A mutation that landed while we were fetching has already bumped the
	// generation; this cycle's result is valid for its own request but must
	// not be cached as current.
	if bs.generation.Load() == gen {
		bs.toCache(ctx, gen, params, view)
	}

	return view, nil
}

// Invalidate marks every previously computed view stale. Called after each
// successful mutation, never after a failed one.
func (bs *BoardService) Invalidate(reason string) {
	gen := bs.generation.Add(1)
	slog.Info("Leaderboard invalidated", "reason", reason, "generation", gen)
	if bs.notifier != nil {
		bs.notifier.BoardUpdated(gen)
	}
}

// Generation returns the current generation token.
func (bs *BoardService) Generation() uint64 {
	return bs.generation.Load()
}

func cacheKey(gen uint64, params BoardParams) string {
	return fmt.Sprintf("%s%d:%s:%s:%s:%s",
		boardCachePrefix, gen, params.TimeRange, params.SortBy, params.Filter,
		strings.ToLower(strings.TrimSpace(params.Query)))
}

func (bs *BoardService) fromCache(ctx context.Context, gen uint64, params BoardParams) *BoardView {
	if bs.cache == nil {
		return nil
	}

	data, err := bs.cache.Get(ctx, cacheKey(gen, params)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Board cache read failed", "error", err)
		}
		return nil
	}

	var view BoardView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		slog.Warn("Board cache entry corrupt", "error", err)
		return nil
	}
	return &view
}

func (bs *BoardService) toCache(ctx context.Context, gen uint64, params BoardParams, view *BoardView) {
	if bs.cache == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		slog.Warn("Board cache marshal failed", "error", err)
		return
	}

	// Old generations age out via TTL; no explicit deletion needed.
	if err := bs.cache.Set(ctx, cacheKey(gen, params), data, boardCacheTTL).Err(); err != nil {
		slog.Warn("Board cache write failed", "error", err)
	}
}
