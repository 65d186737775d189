// Package store owns durable state for reasons and flags. The engines and
// the moderation workflow only ever talk to the Store interface, so they can
// run against Postgres in production and MemoryStore in tests.
package store

import (
	"github.com/google/uuid"

	"github.com/reasonwall/backend/internal/models"
)

// Store is the record store: reason and flag persistence plus the two
// full-text probes the search engine needs. Every method is a single
// consistent operation; there is no cross-call transaction, so callers
// re-validate existence instead of trusting earlier reads.
type Store interface {
	// Reasons, always newest-first where ordered.
	InsertReason(r *models.Reason) error
	GetReason(id uuid.UUID) (*models.Reason, error)
	AllReasons() ([]models.Reason, error)
	PageReasons(offset, limit int) ([]models.Reason, error)
	CountReasons() (int64, error)
	ReasonsByID(ids []uuid.UUID) (map[uuid.UUID]*models.Reason, error)

	// Search index probes. Both return matches ranked by relevance and
	// never fail on "no match".
	SearchReasonText(query string) ([]models.Reason, error)
	SearchReasonLocation(query string) ([]models.Reason, error)

	// Flags.
	InsertFlag(f *models.Flag) error
	GetFlag(id uuid.UUID) (*models.Flag, error)
	PendingFlags() ([]models.Flag, error)
	FlagsByReason(reasonID uuid.UUID) ([]models.Flag, error)
	// DeleteFlag reports whether a row was actually removed, so a racing
	// double-delete shows up as a clean false rather than an error.
	DeleteFlag(id uuid.UUID) (bool, error)

	// DeleteReasonCascade removes the reason and every flag referencing it
	// as one unit. Partial cascades must not be observable.
	DeleteReasonCascade(reasonID uuid.UUID) (flagsDeleted int64, err error)
}
