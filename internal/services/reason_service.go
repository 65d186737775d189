package services

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reasonwall/backend/internal/apperrors"
	"github.com/reasonwall/backend/internal/models"
	"github.com/reasonwall/backend/internal/store"
)

const (
	MaxNameLength   = 25
	MaxReasonLength = 250
	MaxTagLength    = 25
	MaxTags         = 10
)

// ReasonService owns the read side of the wall (listing, search, random
// pick) and the creation pipeline.
type ReasonService struct {
	store store.Store
	gate  *ContentFilter
}

func NewReasonService(st store.Store, gate *ContentFilter) *ReasonService {
	return &ReasonService{store: st, gate: gate}
}

// ReasonPage is one page of a cursor walk.
type ReasonPage struct {
	Page           []models.Reason `json:"page"`
	IsDone         bool            `json:"is_done"`
	ContinueCursor string          `json:"continue_cursor"`
}

// List returns a newest-first page of reasons. The cursor is a stringified
// integer offset ("" means start). With a tag filter the whole filtered set
// is recomputed per page and sliced by that offset, so pages can shift under
// concurrent writes — accepted for a low-write wall.
func (s *ReasonService) List(pageSize int, cursor string, tags []string) (*ReasonPage, error) {
	if pageSize <= 0 {
		return nil, apperrors.NewValidation("page size must be positive")
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 {
			return nil, apperrors.NewValidation("invalid cursor %q", cursor)
		}
		offset = parsed
	}

	// An empty tag list behaves exactly like no filter.
	if len(tags) == 0 {
		page, err := s.store.PageReasons(offset, pageSize)
		if err != nil {
			return nil, err
		}
		total, err := s.store.CountReasons()
		if err != nil {
			return nil, err
		}
		return &ReasonPage{
			Page:           emptyToSlice(page),
			IsDone:         int64(offset+pageSize) >= total,
			ContinueCursor: strconv.Itoa(offset + pageSize),
		}, nil
	}

	all, err := s.store.AllReasons()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Reason, 0, len(all))
	for _, r := range all {
		if r.HasAnyTag(tags) {
			filtered = append(filtered, r)
		}
	}

	start := offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := offset + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return &ReasonPage{
		Page:           emptyToSlice(filtered[start:end]),
		IsDone:         offset+pageSize >= len(filtered),
		ContinueCursor: strconv.Itoa(offset + pageSize),
	}, nil
}

// Search resolves a free-text query plus optional tag constraints through an
// ordered fallback chain: body-text index, then in-memory tag filtering,
// then tag substring match, then the location index. Tag constraints here
// are AND semantics, unlike List's OR — intentional, inherited behavior.
// Never errors on "no matches".
func (s *ReasonService) Search(query string, tags []string) ([]models.Reason, error) {
	hasQuery := strings.TrimSpace(query) != ""
	if !hasQuery && len(tags) == 0 {
		return []models.Reason{}, nil
	}

	lowered := make([]string, len(tags))
	for i, t := range tags {
		lowered[i] = strings.ToLower(t)
	}

	if hasQuery {
		textResults, err := s.store.SearchReasonText(query)
		if err != nil {
			return nil, err
		}
		if len(textResults) > 0 {
			if len(lowered) > 0 {
				// The chain stops here even when narrowing empties
				// the set: a text hit is a text hit.
				return filterAllTags(textResults, lowered), nil
			}
			return textResults, nil
		}
	}

	all, err := s.store.AllReasons()
	if err != nil {
		return nil, err
	}
	filtered := all
	if len(lowered) > 0 {
		filtered = filterAllTags(all, lowered)
	}
	if !hasQuery {
		return emptyToSlice(filtered), nil
	}

	needle := strings.ToLower(query)
	byTag := make([]models.Reason, 0, len(filtered))
	for _, r := range filtered {
		for _, t := range r.Tags {
			if t == needle || strings.Contains(t, needle) {
				byTag = append(byTag, r)
				break
			}
		}
	}
	if len(byTag) > 0 {
		return byTag, nil
	}

	locationResults, err := s.store.SearchReasonLocation(query)
	if err != nil {
		return nil, err
	}
	if len(lowered) > 0 {
		return filterAllTags(locationResults, lowered), nil
	}
	return emptyToSlice(locationResults), nil
}

// Random returns one uniformly chosen reason, or nil for an empty wall. The
// seed is a client cache-buster, not an RNG seed.
func (s *ReasonService) Random(_ int64) (*models.Reason, error) {
	all, err := s.store.AllReasons()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	pick := all[rand.Intn(len(all))]
	return &pick, nil
}

// Create validates and normalizes a submission, runs it through the content
// gate, and inserts it. Reasons are immutable after this point.
func (s *ReasonService) Create(initialName, reasonText, location string, tags []string) (*models.Reason, error) {
	initialName = strings.TrimSpace(initialName)
	reasonText = strings.TrimSpace(reasonText)
	location = strings.TrimSpace(location)

	if initialName == "" {
		return nil, apperrors.NewValidation("name is required")
	}
	if len(initialName) > MaxNameLength {
		return nil, apperrors.NewValidation("name must be at most %d characters", MaxNameLength)
	}
	if reasonText == "" {
		return nil, apperrors.NewValidation("reason text is required")
	}
	if len(reasonText) > MaxReasonLength {
		return nil, apperrors.NewValidation("reason must be at most %d characters", MaxReasonLength)
	}

	normalized, err := NormalizeTags(tags)
	if err != nil {
		return nil, err
	}

	if s.gate != nil {
		if err := s.gate.Check(initialName); err != nil {
			return nil, err
		}
		if err := s.gate.Check(reasonText); err != nil {
			return nil, err
		}
	}

	reason := &models.Reason{
		InitialName: initialName,
		ReasonText:  reasonText,
		Location:    location,
		Tags:        normalized,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertReason(reason); err != nil {
		return nil, err
	}
	return reason, nil
}

func (s *ReasonService) Get(id uuid.UUID) (*models.Reason, error) {
	return s.store.GetReason(id)
}

func (s *ReasonService) Count() (int64, error) {
	return s.store.CountReasons()
}

// NormalizeTags trims, lowercases, and strips one leading "#" from each
// tag, dropping any that come out empty. Duplicates are kept as submitted.
func NormalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), "#")
		if t == "" {
			continue
		}
		if len(t) > MaxTagLength {
			return nil, apperrors.NewValidation("tag %q is longer than %d characters", t, MaxTagLength)
		}
		normalized = append(normalized, t)
	}
	if len(normalized) > MaxTags {
		return nil, apperrors.NewValidation("at most %d tags are allowed", MaxTags)
	}
	return normalized, nil
}

func filterAllTags(reasons []models.Reason, tags []string) []models.Reason {
	out := make([]models.Reason, 0, len(reasons))
	for _, r := range reasons {
		if r.HasAllTags(tags) {
			out = append(out, r)
		}
	}
	return out
}

func emptyToSlice(reasons []models.Reason) []models.Reason {
	if reasons == nil {
		return []models.Reason{}
	}
	return reasons
}
