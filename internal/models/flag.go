package models

import (
	"time"

	"github.com/google/uuid"
)

// FlagStatusPending is the only status a stored flag ever has: dismissal
// and cascade removal both delete the row instead of transitioning it.
const FlagStatusPending = "pending"

// Flag is a user-submitted abuse report against one reason. Many flags may
// point at the same reason; the reason side knows nothing about them.
type Flag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReasonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"reason_id"`
	Report    string    `gorm:"size:1000;not null" json:"report"`
	Status    string    `gorm:"not null;default:'pending';size:20;index" json:"status"`
	FlaggedAt time.Time `gorm:"not null;index" json:"flagged_at"`
}

func (Flag) TableName() string {
	return "flags"
}
