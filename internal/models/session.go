package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is one player's buy-in/cash-out record for a single game night.
// Every session saved in the same submission shares a GameID, which groups
// the per-player entries into one logical game. Older rows imported before
// GameID existed have it unset; aggregation falls back to the date string.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlayerID  uuid.UUID `json:"player_id" gorm:"type:uuid;not null;index"`
	BuyIn     float64   `json:"buyin" gorm:"not null"`
	CashOut   float64   `json:"cashout" gorm:"not null"`
	GameDate  Date      `json:"game_date" gorm:"type:date;not null;index"`
	GameID    *string   `json:"game_id,omitempty" gorm:"size:64;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Player Player `json:"player,omitempty" gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the ID if not already set
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Profit is cash-out minus buy-in; negative for a losing night.
func (s *Session) Profit() float64 {
	return s.CashOut - s.BuyIn
}

// GameKey returns the identifier used for distinct-game counting. Legacy rows
// without a game id count one game per date.
func (s *Session) GameKey() string {
	if s.GameID != nil && *s.GameID != "" {
		return *s.GameID
	}
	return s.GameDate.String()
}

// GameEntry is one player's line in an add-game submission. Included makes
// the original implicit "played unless toggled off" rule explicit; a row that
// is included but missing either amount is skipped, never coerced to zero.
type GameEntry struct {
	PlayerID uuid.UUID `json:"player_id" validate:"required"`
	Included bool      `json:"included"`
	BuyIn    *float64  `json:"buyin,omitempty" validate:"omitempty,gte=0"`
	CashOut  *float64  `json:"cashout,omitempty"`
}

// Complete reports whether the entry carries everything needed to persist.
func (e *GameEntry) Complete() bool {
	return e.Included && e.BuyIn != nil && e.CashOut != nil
}

type AddGameRequest struct {
	GameDate Date        `json:"game_date" validate:"required"`
	Entries  []GameEntry `json:"entries" validate:"required,min=1,dive"`
}
