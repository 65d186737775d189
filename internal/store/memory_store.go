package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/reasonwall/backend/internal/models"
)

// MemoryStore is an in-memory Store with the same observable semantics as
// GormStore. It backs the engine and workflow tests and is handy for local
// runs without Postgres. Search matches any whitespace-separated query token
// as a case-insensitive substring, which is close enough to the ranked
// full-text probe for everything above this layer.
type MemoryStore struct {
	mu      sync.RWMutex
	reasons []models.Reason // insertion order; readers walk it backwards
	flags   []models.Flag
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertReason(r *models.Reason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.reasons = append(s.reasons, *r)
	return nil
}

func (s *MemoryStore) GetReason(id uuid.UUID) (*models.Reason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.reasons {
		if s.reasons[i].ID == id {
			r := s.reasons[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) AllReasons() ([]models.Reason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirstLocked(), nil
}

func (s *MemoryStore) PageReasons(offset, limit int) ([]models.Reason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.newestFirstLocked()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *MemoryStore) CountReasons() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.reasons)), nil
}

func (s *MemoryStore) ReasonsByID(ids []uuid.UUID) (map[uuid.UUID]*models.Reason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[uuid.UUID]*models.Reason, len(ids))
	for _, id := range ids {
		for i := range s.reasons {
			if s.reasons[i].ID == id {
				r := s.reasons[i]
				result[id] = &r
				break
			}
		}
	}
	return result, nil
}

func (s *MemoryStore) SearchReasonText(query string) ([]models.Reason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []models.Reason
	for _, r := range s.newestFirstLocked() {
		if tokenMatch(r.ReasonText, query) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func (s *MemoryStore) SearchReasonLocation(query string) ([]models.Reason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []models.Reason
	for _, r := range s.newestFirstLocked() {
		if r.Location != "" && tokenMatch(r.Location, query) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func (s *MemoryStore) InsertFlag(f *models.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	s.flags = append(s.flags, *f)
	return nil
}

func (s *MemoryStore) GetFlag(id uuid.UUID) (*models.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.flags {
		if s.flags[i].ID == id {
			f := s.flags[i]
			return &f, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) PendingFlags() ([]models.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var flags []models.Flag
	for i := len(s.flags) - 1; i >= 0; i-- {
		if s.flags[i].Status == models.FlagStatusPending {
			flags = append(flags, s.flags[i])
		}
	}
	return flags, nil
}

func (s *MemoryStore) FlagsByReason(reasonID uuid.UUID) ([]models.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var flags []models.Flag
	for i := len(s.flags) - 1; i >= 0; i-- {
		if s.flags[i].ReasonID == reasonID {
			flags = append(flags, s.flags[i])
		}
	}
	return flags, nil
}

func (s *MemoryStore) DeleteFlag(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.flags {
		if s.flags[i].ID == id {
			s.flags = append(s.flags[:i], s.flags[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) DeleteReasonCascade(reasonID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []models.Flag
	var flagsDeleted int64
	for _, f := range s.flags {
		if f.ReasonID == reasonID {
			flagsDeleted++
			continue
		}
		kept = append(kept, f)
	}
	s.flags = kept

	for i := range s.reasons {
		if s.reasons[i].ID == reasonID {
			s.reasons = append(s.reasons[:i], s.reasons[i+1:]...)
			break
		}
	}
	return flagsDeleted, nil
}

func (s *MemoryStore) newestFirstLocked() []models.Reason {
	out := make([]models.Reason, 0, len(s.reasons))
	for i := len(s.reasons) - 1; i >= 0; i-- {
		out = append(out, s.reasons[i])
	}
	return out
}

func tokenMatch(text, query string) bool {
	haystack := strings.ToLower(text)
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
