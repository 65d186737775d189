package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reasonwall/backend/internal/apperrors"
	"github.com/reasonwall/backend/internal/models"
	"github.com/reasonwall/backend/internal/store"
)

func newTestModeration(t *testing.T) (*ModerationService, *ReasonService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewModerationService(st), NewReasonService(st, nil), st
}

func TestSubmitFlagValidation(t *testing.T) {
	mod, reasons, _ := newTestModeration(t)
	r := mustCreate(t, reasons, "Ana", "flag me", "")

	_, err := mod.SubmitFlag(r.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Please provide a reason for flagging", err.Error())

	_, err = mod.SubmitFlag(r.ID, "   ")
	assert.True(t, apperrors.IsValidation(err))

	_, err = mod.SubmitFlag(r.ID, strings.Repeat("x", 1001))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmitFlagUnknownReason(t *testing.T) {
	mod, _, _ := newTestModeration(t)

	_, err := mod.SubmitFlag(newUUID(t), "spam")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSubmitAndListFlags(t *testing.T) {
	mod, reasons, _ := newTestModeration(t)
	r := mustCreate(t, reasons, "Ana", "flag me", "")

	first, err := mod.SubmitFlag(r.ID, "spam")
	require.NoError(t, err)
	second, err := mod.SubmitFlag(r.ID, "also spam")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	flagged, err := mod.ListPendingFlags()
	require.NoError(t, err)
	require.Len(t, flagged, 2)

	// Newest first, each joined with its reason.
	assert.Equal(t, second.ID, flagged[0].Flag.ID)
	assert.Equal(t, first.ID, flagged[1].Flag.ID)
	for _, fr := range flagged {
		require.NotNil(t, fr.Reason)
		assert.Equal(t, r.ID, fr.Reason.ID)
		assert.Equal(t, "pending", fr.Flag.Status)
	}
}

// A flag whose reason disappeared between reads is listed with a nil
// reason, not dropped and not an error.
func TestListPendingFlagsOrphaned(t *testing.T) {
	mod, reasons, st := newTestModeration(t)
	r := mustCreate(t, reasons, "Ana", "still here", "")

	kept, err := mod.SubmitFlag(r.ID, "spam")
	require.NoError(t, err)

	// Simulate a flag that outlived its reason (deleted between the
	// flag read and the join).
	orphan := models.Flag{
		ReasonID:  newUUID(t),
		Report:    "points at nothing",
		Status:    models.FlagStatusPending,
		FlaggedAt: time.Now().UTC(),
	}
	require.NoError(t, st.InsertFlag(&orphan))

	flagged, err := mod.ListPendingFlags()
	require.NoError(t, err)
	require.Len(t, flagged, 2)

	byID := make(map[string]FlaggedReason, 2)
	for _, fr := range flagged {
		byID[fr.Flag.ID.String()] = fr
	}
	assert.Nil(t, byID[orphan.ID.String()].Reason)
	require.NotNil(t, byID[kept.ID.String()].Reason)
	assert.Equal(t, r.ID, byID[kept.ID.String()].Reason.ID)
}

func TestDismissFlagIdempotent(t *testing.T) {
	mod, reasons, _ := newTestModeration(t)
	r := mustCreate(t, reasons, "Ana", "flag me", "")

	keep, err := mod.SubmitFlag(r.ID, "keep this one")
	require.NoError(t, err)
	gone, err := mod.SubmitFlag(r.ID, "dismiss this one")
	require.NoError(t, err)

	require.NoError(t, mod.DismissFlag(gone.ID))

	// Second dismissal reports not found and touches nothing else.
	err = mod.DismissFlag(gone.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	flagged, err := mod.ListPendingFlags()
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, keep.ID, flagged[0].Flag.ID)
}

func TestRemoveReasonCascade(t *testing.T) {
	mod, reasons, st := newTestModeration(t)
	doomed := mustCreate(t, reasons, "Ana", "remove me", "")
	survivor := mustCreate(t, reasons, "Ben", "keep me", "")

	for i := 0; i < 3; i++ {
		_, err := mod.SubmitFlag(doomed.ID, "offensive")
		require.NoError(t, err)
	}
	kept, err := mod.SubmitFlag(survivor.ID, "mild complaint")
	require.NoError(t, err)

	require.NoError(t, mod.RemoveReason(doomed.ID))

	got, err := st.GetReason(doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	flagged, err := mod.ListPendingFlags()
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, kept.ID, flagged[0].Flag.ID)
	require.NotNil(t, flagged[0].Reason)
	assert.Equal(t, survivor.ID, flagged[0].Reason.ID)
}

func TestRemoveReasonNotFound(t *testing.T) {
	mod, _, _ := newTestModeration(t)

	err := mod.RemoveReason(newUUID(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
