package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evanofslack/pokerboard/internal/database"
	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerService owns the player roster
type PlayerService struct {
	db *database.DB
}

// NewPlayerService creates a new player service
func NewPlayerService(db *database.DB) *PlayerService {
	return &PlayerService{db: db}
}

// ListPlayers returns every player, oldest first. Creation order is the
// stable default ordering the rest of the system relies on.
func (ps *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := ps.db.WithContext(ctx).Order("created_at ASC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// GetPlayer retrieves a player by ID
func (ps *PlayerService) GetPlayer(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := ps.db.WithContext(ctx).First(&player, "id = ?", playerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("player not found: %s", playerID)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// CreatePlayer adds a new player to the roster
func (ps *PlayerService) CreatePlayer(ctx context.Context, name string, photoURL *string) (*models.Player, error) {
	slog.Info("Creating player", "name", name)

	player := &models.Player{
		Name:     name,
		PhotoURL: photoURL,
	}

	if err := ps.db.WithContext(ctx).Create(player).Error; err != nil {
		slog.Error("Failed to create player", "name", name, "error", err)
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	slog.Info("Player created successfully", "player_id", player.ID, "name", name)
	return player, nil
}

// UpdatePlayer changes a player's name and/or photo
func (ps *PlayerService) UpdatePlayer(ctx context.Context, playerID uuid.UUID, name string, photoURL *string) (*models.Player, error) {
	slog.Info("Updating player", "player_id", playerID, "name", name)

	updates := map[string]interface{}{"name": name}
	if photoURL != nil {
		updates["photo_url"] = *photoURL
	}

	result := ps.db.WithContext(ctx).Model(&models.Player{}).
		Where("id = ?", playerID).
		Updates(updates)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("player not found: %s", playerID)
	}

	return ps.GetPlayer(ctx, playerID)
}

// DeletePlayer removes a player and all their sessions in one transaction,
// so the session table never holds rows for a player that no longer exists.
func (ps *PlayerService) DeletePlayer(ctx context.Context, playerID uuid.UUID) error {
	slog.Info("Deleting player", "player_id", playerID)

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", playerID).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete player sessions: %w", err)
		}

		result := tx.Where("id = ?", playerID).Delete(&models.Player{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete player: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("player not found: %s", playerID)
		}
		return nil
	})

	if err != nil {
		slog.Error("Failed to delete player", "player_id", playerID, "error", err)
		return err
	}

	slog.Info("Player deleted successfully", "player_id", playerID)
	return nil
}
