package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is a member of the home game. CreatedAt drives the default listing
// order so the roster stays stable as players are added.
type Player struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null;size:100;uniqueIndex"`
	PhotoURL  *string   `json:"photo_url,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate sets the ID if not already set
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CreatePlayerRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type UpdatePlayerRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
