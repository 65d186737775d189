package models

import (
	"time"

	"github.com/google/uuid"
)

type RefreshToken struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ModeratorID uuid.UUID `gorm:"type:uuid;not null;index" json:"moderator_id"`
	TokenHash   string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Revoked     bool      `gorm:"default:false" json:"revoked"`
	CreatedAt   time.Time `json:"created_at"`
	Moderator   Moderator `gorm:"foreignKey:ModeratorID" json:"-"`
}
