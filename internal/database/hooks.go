package database

import (
	"log/slog"
)

// SetupIndexes creates additional indexes that GORM can't handle automatically
func (db *DB) SetupIndexes() error {
	slog.Info("Setting up additional database indexes")

	// The leaderboard fetch is always "sessions on or after a cutoff date",
	// grouped by player afterwards.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_game_date_player
		ON sessions(game_date DESC, player_id)
	`).Error; err != nil {
		return err
	}

	// Player history pages read one player's sessions newest first.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_player_date
		ON sessions(player_id, game_date DESC)
	`).Error; err != nil {
		return err
	}

	slog.Info("Additional database indexes created successfully")
	return nil
}
