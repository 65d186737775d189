package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Reason is an anonymous wall post. Rows are immutable after creation and
// only ever leave the table through a moderator removal.
type Reason struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InitialName string                      `gorm:"size:25;not null" json:"initial_name"`
	ReasonText  string                      `gorm:"size:250;not null" json:"reason_text"`
	Location    string                      `gorm:"size:255" json:"location,omitempty"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	CreatedAt   time.Time                   `gorm:"not null;index" json:"created_at"`
}

// HasAnyTag reports whether the reason carries at least one of the given
// tags (listing filter semantics).
func (r *Reason) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, t := range r.Tags {
			if t == want {
				return true
			}
		}
	}
	return false
}

// HasAllTags reports whether the reason carries every one of the given
// tags (search filter semantics).
func (r *Reason) HasAllTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, t := range r.Tags {
			if t == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
