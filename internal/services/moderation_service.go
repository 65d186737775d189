package services

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reasonwall/backend/internal/apperrors"
	"github.com/reasonwall/backend/internal/models"
	"github.com/reasonwall/backend/internal/store"
)

const MaxReportLength = 1000

// ModerationService manages the flag lifecycle: submission by anonymous
// users, review listing, dismissal, and cascading content removal.
type ModerationService struct {
	store store.Store
}

func NewModerationService(st store.Store) *ModerationService {
	return &ModerationService{store: st}
}

// FlaggedReason is a flag joined with the reason it points at. Reason is
// nil when the reason was removed after the flag was created; callers show
// those as orphaned rather than failing.
type FlaggedReason struct {
	Flag   models.Flag    `json:"flag"`
	Reason *models.Reason `json:"reason"`
}

// SubmitFlag records an abuse report against an existing reason.
func (s *ModerationService) SubmitFlag(reasonID uuid.UUID, report string) (*models.Flag, error) {
	report = strings.TrimSpace(report)
	if report == "" {
		return nil, apperrors.NewValidation("Please provide a reason for flagging")
	}
	if len(report) > MaxReportLength {
		return nil, apperrors.NewValidation("Report must be less than %d characters", MaxReportLength)
	}

	reason, err := s.store.GetReason(reasonID)
	if err != nil {
		return nil, err
	}
	if reason == nil {
		return nil, apperrors.NewNotFound("Reason")
	}

	flag := &models.Flag{
		ReasonID:  reasonID,
		Report:    report,
		Status:    models.FlagStatusPending,
		FlaggedAt: time.Now().UTC(),
	}
	if err := s.store.InsertFlag(flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// ListPendingFlags returns every pending flag joined with its reason via one
// batched lookup. A reason deleted between the two reads just yields a nil
// join for that flag.
func (s *ModerationService) ListPendingFlags() ([]FlaggedReason, error) {
	flags, err := s.store.PendingFlags()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(flags))
	seen := make(map[uuid.UUID]bool, len(flags))
	for _, f := range flags {
		if !seen[f.ReasonID] {
			seen[f.ReasonID] = true
			ids = append(ids, f.ReasonID)
		}
	}

	reasons, err := s.store.ReasonsByID(ids)
	if err != nil {
		return nil, err
	}

	joined := make([]FlaggedReason, len(flags))
	for i, f := range flags {
		joined[i] = FlaggedReason{Flag: f, Reason: reasons[f.ReasonID]}
	}
	return joined, nil
}

// DismissFlag deletes one flag. A missing id is NotFound, which a racing
// remove/dismiss pair treats as benign.
func (s *ModerationService) DismissFlag(flagID uuid.UUID) error {
	deleted, err := s.store.DeleteFlag(flagID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Flag")
	}
	return nil
}

// RemoveReason deletes a reason and every flag referencing it as one unit.
// A store failure mid-cascade rolls back and surfaces as an integrity
// failure, never as a half-cascaded state.
func (s *ModerationService) RemoveReason(reasonID uuid.UUID) error {
	reason, err := s.store.GetReason(reasonID)
	if err != nil {
		return err
	}
	if reason == nil {
		return apperrors.NewNotFound("Reason")
	}

	flagsDeleted, err := s.store.DeleteReasonCascade(reasonID)
	if err != nil {
		return &apperrors.IntegrityError{Op: "remove reason", Err: err}
	}
	slog.Info("reason removed", "reason_id", reasonID, "flags_deleted", flagsDeleted)
	return nil
}
