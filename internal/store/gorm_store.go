package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reasonwall/backend/internal/models"
)

// GormStore is the Postgres-backed Store. The two search probes use
// Postgres full-text search over reason_text and location, standing in for
// dedicated search indexes.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InsertReason(r *models.Reason) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert reason: %w", err)
	}
	return nil
}

func (s *GormStore) GetReason(id uuid.UUID) (*models.Reason, error) {
	var reason models.Reason
	err := s.db.Where("id = ?", id).First(&reason).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reason, nil
}

func (s *GormStore) AllReasons() ([]models.Reason, error) {
	var reasons []models.Reason
	err := s.db.Order("created_at DESC, id DESC").Find(&reasons).Error
	return reasons, err
}

func (s *GormStore) PageReasons(offset, limit int) ([]models.Reason, error) {
	var reasons []models.Reason
	err := s.db.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reasons).Error
	return reasons, err
}

func (s *GormStore) CountReasons() (int64, error) {
	var total int64
	err := s.db.Model(&models.Reason{}).Count(&total).Error
	return total, err
}

func (s *GormStore) ReasonsByID(ids []uuid.UUID) (map[uuid.UUID]*models.Reason, error) {
	result := make(map[uuid.UUID]*models.Reason, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var reasons []models.Reason
	if err := s.db.Where("id IN ?", ids).Find(&reasons).Error; err != nil {
		return nil, err
	}
	for i := range reasons {
		result[reasons[i].ID] = &reasons[i]
	}
	return result, nil
}

func (s *GormStore) SearchReasonText(query string) ([]models.Reason, error) {
	var reasons []models.Reason
	err := s.db.Raw(`
		SELECT * FROM reasons
		WHERE to_tsvector('simple', reason_text) @@ plainto_tsquery('simple', ?)
		ORDER BY ts_rank(to_tsvector('simple', reason_text), plainto_tsquery('simple', ?)) DESC,
			created_at DESC
	`, query, query).Scan(&reasons).Error
	return reasons, err
}

func (s *GormStore) SearchReasonLocation(query string) ([]models.Reason, error) {
	var reasons []models.Reason
	err := s.db.Raw(`
		SELECT * FROM reasons
		WHERE location <> ''
		  AND to_tsvector('simple', location) @@ plainto_tsquery('simple', ?)
		ORDER BY ts_rank(to_tsvector('simple', location), plainto_tsquery('simple', ?)) DESC,
			created_at DESC
	`, query, query).Scan(&reasons).Error
	return reasons, err
}

func (s *GormStore) InsertFlag(f *models.Flag) error {
	if err := s.db.Create(f).Error; err != nil {
		return fmt.Errorf("failed to insert flag: %w", err)
	}
	return nil
}

func (s *GormStore) GetFlag(id uuid.UUID) (*models.Flag, error) {
	var flag models.Flag
	err := s.db.Where("id = ?", id).First(&flag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

func (s *GormStore) PendingFlags() ([]models.Flag, error) {
	var flags []models.Flag
	err := s.db.Where("status = ?", models.FlagStatusPending).
		Order("flagged_at DESC, id DESC").
		Find(&flags).Error
	return flags, err
}

func (s *GormStore) FlagsByReason(reasonID uuid.UUID) ([]models.Flag, error) {
	var flags []models.Flag
	err := s.db.Where("reason_id = ?", reasonID).
		Order("flagged_at DESC, id DESC").
		Find(&flags).Error
	return flags, err
}

func (s *GormStore) DeleteFlag(id uuid.UUID) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&models.Flag{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) DeleteReasonCascade(reasonID uuid.UUID) (int64, error) {
	var flagsDeleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("reason_id = ?", reasonID).Delete(&models.Flag{})
		if res.Error != nil {
			return res.Error
		}
		flagsDeleted = res.RowsAffected
		return tx.Where("id = ?", reasonID).Delete(&models.Reason{}).Error
	})
	if err != nil {
		return 0, err
	}
	return flagsDeleted, nil
}
