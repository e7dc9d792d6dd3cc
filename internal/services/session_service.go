package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/evanofslack/pokerboard/internal/database"
	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/google/uuid"
)

// ErrNoCompleteEntries is returned when an add-game submission contains no
// row with both amounts filled in for an included player.
var ErrNoCompleteEntries = errors.New("no complete entries to save")

// SessionService owns session rows (one player's result in one game)
type SessionService struct {
	db *database.DB
}

// NewSessionService creates a new session service
func NewSessionService(db *database.DB) *SessionService {
	return &SessionService{db: db}
}

// ListSessions returns sessions for the leaderboard fetch. A nil cutoff means
// all time; otherwise the bound is inclusive.
func (ss *SessionService) ListSessions(ctx context.Context, cutoff *models.Date) ([]models.Session, error) {
	query := ss.db.WithContext(ctx)
	if cutoff != nil {
		query = query.Where("game_date >= ?", cutoff.Time)
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// ListByPlayer returns one player's full session history, oldest first.
func (ss *SessionService) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	err := ss.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("game_date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for player %s: %w", playerID, err)
	}
	return sessions, nil
}

// AddGame persists one game submission. Every complete entry becomes a
// session row sharing a single generated game id, inserted in one
// transaction so they all persist or none do. Entries that are excluded or
// missing an amount are skipped, never coerced.
func (ss *SessionService) AddGame(ctx context.Context, req models.AddGameRequest) ([]models.Session, error) {
	gameID := uuid.New().String()

	sessions := make([]models.Session, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if !entry.Complete() {
			continue
		}
		sessions = append(sessions, models.Session{
			PlayerID: entry.PlayerID,
			BuyIn:    *entry.BuyIn,
			CashOut:  *entry.CashOut,
			GameDate: req.GameDate,
			GameID:   &gameID,
		})
	}

	if len(sessions) == 0 {
		return nil, ErrNoCompleteEntries
	}

	slog.Info("Saving game", "game_id", gameID, "game_date", req.GameDate, "entries", len(sessions))

	if err := ss.db.WithContext(ctx).Create(&sessions).Error; err != nil {
		slog.Error("Failed to save game", "game_id", gameID, "error", err)
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	slog.Info("Game saved successfully", "game_id", gameID, "entries", len(sessions))
	return sessions, nil
}
