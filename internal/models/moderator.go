package models

import (
	"time"

	"github.com/google/uuid"
)

// Moderator is the only authenticated principal in the system. Posters and
// flag submitters stay anonymous.
type Moderator struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
