package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reasonwall/backend/internal/apperrors"
	"github.com/reasonwall/backend/internal/models"
	"github.com/reasonwall/backend/internal/store"
)

func newTestReasonService(t *testing.T) (*ReasonService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewReasonService(st, NewContentFilter()), st
}

func mustCreate(t *testing.T, svc *ReasonService, name, text, location string, tags ...string) *models.Reason {
	t.Helper()
	reason, err := svc.Create(name, text, location, tags)
	require.NoError(t, err)
	return reason
}

func TestCreateNormalizesTags(t *testing.T) {
	svc, _ := newTestReasonService(t)

	reason := mustCreate(t, svc, "Ana", "My dog waits for me", "",
		" #Hope ", "SUPPORT", "", "#", "#family")
	assert.Equal(t, []string{"hope", "support", "family"}, []string(reason.Tags))
}

func TestCreateKeepsDuplicateTags(t *testing.T) {
	svc, _ := newTestReasonService(t)

	reason := mustCreate(t, svc, "Ana", "Sunrises", "", "hope", "#hope", "HOPE")
	assert.Equal(t, []string{"hope", "hope", "hope"}, []string(reason.Tags))
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestReasonService(t)

	cases := []struct {
		name     string
		initial  string
		text     string
		tags     []string
	}{
		{"empty name", "", "some reason", nil},
		{"name too long", strings.Repeat("a", 26), "some reason", nil},
		{"empty text", "Ana", "   ", nil},
		{"text too long", "Ana", strings.Repeat("x", 251), nil},
		{"tag too long", "Ana", "some reason", []string{strings.Repeat("t", 26)}},
		{"too many tags", "Ana", "some reason",
			[]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.initial, tc.text, "", tc.tags)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateContentGate(t *testing.T) {
	svc, _ := newTestReasonService(t)

	_, err := svc.Create("Ana", "check out https://spam.example.com", "", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "not allowed")
}

func TestListInvalidInput(t *testing.T) {
	svc, _ := newTestReasonService(t)

	_, err := svc.List(0, "", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.List(-3, "", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.List(10, "not-a-number", nil)
	assert.True(t, apperrors.IsValidation(err))
}

// Walking the cursor chain until IsDone must yield every item exactly once.
func TestListPaginationCompleteness(t *testing.T) {
	svc, _ := newTestReasonService(t)

	const total = 25
	for i := 0; i < total; i++ {
		mustCreate(t, svc, "Ana", "reason number "+strconv.Itoa(i), "", "hope")
	}

	for _, tags := range [][]string{nil, {"hope"}} {
		seen := make(map[string]bool)
		cursor := ""
		pages := 0
		for {
			page, err := svc.List(7, cursor, tags)
			require.NoError(t, err)
			for _, r := range page.Page {
				require.False(t, seen[r.ID.String()], "duplicate item in walk")
				seen[r.ID.String()] = true
			}
			pages++
			if page.IsDone {
				break
			}
			cursor = page.ContinueCursor
		}
		assert.Equal(t, total, len(seen))
		assert.Equal(t, 4, pages) // ceil(25/7)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestReasonService(t)

	mustCreate(t, svc, "Ana", "older", "")
	mustCreate(t, svc, "Ben", "newer", "")

	page, err := svc.List(10, "", nil)
	require.NoError(t, err)
	require.Len(t, page.Page, 2)
	assert.Equal(t, "newer", page.Page[0].ReasonText)
	assert.Equal(t, "older", page.Page[1].ReasonText)
	assert.True(t, page.IsDone)
}

// Listing uses OR semantics across the requested tags; search uses AND.
func TestTagFilterAsymmetry(t *testing.T) {
	svc, _ := newTestReasonService(t)

	a := mustCreate(t, svc, "A", "first body", "", "x")
	b := mustCreate(t, svc, "B", "second body", "", "y")
	c := mustCreate(t, svc, "C", "third body", "", "x", "y")

	page, err := svc.List(10, "", []string{"x", "y"})
	require.NoError(t, err)
	ids := make(map[string]bool)
	for _, r := range page.Page {
		ids[r.ID.String()] = true
	}
	assert.Len(t, ids, 3)
	assert.True(t, ids[a.ID.String()] && ids[b.ID.String()] && ids[c.ID.String()])

	results, err := svc.Search("", []string{"x", "y"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, c.ID, results[0].ID)
}

func TestListScenarioHopeTag(t *testing.T) {
	svc, _ := newTestReasonService(t)

	mustCreate(t, svc, "Ana", "I need help", "", "support")
	stay := mustCreate(t, svc, "Ben", "Stay strong", "", "support", "hope")

	page, err := svc.List(10, "", []string{"hope"})
	require.NoError(t, err)
	require.Len(t, page.Page, 1)
	assert.Equal(t, stay.ID, page.Page[0].ID)
	assert.True(t, page.IsDone)
}

func TestListEmptyFilterEqualsNoFilter(t *testing.T) {
	svc, _ := newTestReasonService(t)

	for i := 0; i < 5; i++ {
		mustCreate(t, svc, "Ana", "reason "+strconv.Itoa(i), "", "hope")
	}

	unfiltered, err := svc.List(3, "", nil)
	require.NoError(t, err)
	empty, err := svc.List(3, "", []string{})
	require.NoError(t, err)

	assert.Equal(t, unfiltered.Page, empty.Page)
	assert.Equal(t, unfiltered.IsDone, empty.IsDone)
	assert.Equal(t, unfiltered.ContinueCursor, empty.ContinueCursor)
}

func TestListCursorPastEnd(t *testing.T) {
	svc, _ := newTestReasonService(t)

	mustCreate(t, svc, "Ana", "only one", "", "hope")

	for _, tags := range [][]string{nil, {"hope"}} {
		page, err := svc.List(10, "50", tags)
		require.NoError(t, err)
		assert.Empty(t, page.Page)
		assert.True(t, page.IsDone)
	}
}

func TestSearchEmptyQueryAndTags(t *testing.T) {
	svc, _ := newTestReasonService(t)
	mustCreate(t, svc, "Ana", "something", "")

	results, err := svc.Search("", nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search("   ", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchTextIndex(t *testing.T) {
	svc, _ := newTestReasonService(t)

	match := mustCreate(t, svc, "Ana", "My garden keeps me grounded", "", "nature")
	mustCreate(t, svc, "Ben", "Music every morning", "", "art")

	results, err := svc.Search("garden", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].ID)
}

func TestSearchTextIndexWithTagNarrowing(t *testing.T) {
	svc, _ := newTestReasonService(t)

	tagged := mustCreate(t, svc, "Ana", "My garden keeps me grounded", "", "nature", "calm")
	mustCreate(t, svc, "Ben", "A different garden story", "", "family")

	results, err := svc.Search("garden", []string{"Nature", "calm"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, tagged.ID, results[0].ID)
}

// A text-index hit ends the chain even when tag narrowing empties the set.
func TestSearchTextHitStopsChain(t *testing.T) {
	svc, _ := newTestReasonService(t)

	mustCreate(t, svc, "Ana", "My garden keeps me grounded", "", "nature")

	results, err := svc.Search("garden", []string{"missing-tag"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchTagSubstringFallback(t *testing.T) {
	svc, _ := newTestReasonService(t)

	match := mustCreate(t, svc, "Ana", "Family keeps me going", "", "friendship")
	mustCreate(t, svc, "Ben", "Long walks at dawn", "", "nature")

	// "riendsh" appears in no body text or location, only inside a tag.
	results, err := svc.Search("riendsh", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].ID)
}

func TestSearchLocationFallback(t *testing.T) {
	svc, _ := newTestReasonService(t)

	match := mustCreate(t, svc, "Ana", "The neighborhood cats", "Lisbon, Portugal", "animals")
	mustCreate(t, svc, "Ben", "Rainy afternoons", "Oslo", "weather")

	results, err := svc.Search("lisbon", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].ID)

	// AND tag filter still applies to location results.
	results, err = svc.Search("lisbon", []string{"weather"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchNoMatchesIsNotAnError(t *testing.T) {
	svc, _ := newTestReasonService(t)
	mustCreate(t, svc, "Ana", "Morning coffee", "", "ritual")

	results, err := svc.Search("zzz-nothing", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRandomEmptyWall(t *testing.T) {
	svc, _ := newTestReasonService(t)

	reason, err := svc.Random(42)
	require.NoError(t, err)
	assert.Nil(t, reason)
}

func TestRandomUniformity(t *testing.T) {
	svc, _ := newTestReasonService(t)

	const items = 5
	ids := make(map[string]int, items)
	for i := 0; i < items; i++ {
		r := mustCreate(t, svc, "Ana", "reason "+strconv.Itoa(i), "")
		ids[r.ID.String()] = 0
	}

	const draws = 10000
	for i := 0; i < draws; i++ {
		r, err := svc.Random(int64(i))
		require.NoError(t, err)
		require.NotNil(t, r)
		ids[r.ID.String()]++
	}

	expected := draws / items
	for id, count := range ids {
		assert.InDelta(t, expected, count, float64(expected)/4,
			"item %s drawn %d times", id, count)
	}
}

func TestGetAndCount(t *testing.T) {
	svc, _ := newTestReasonService(t)

	r := mustCreate(t, svc, "Ana", "counted", "")
	mustCreate(t, svc, "Ben", "also counted", "")

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := svc.Get(r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "counted", got.ReasonText)

	missing, err := svc.Get(newUUID(t))
	require.NoError(t, err)
	assert.Nil(t, missing)
}
