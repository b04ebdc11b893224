// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
	"github.com/weight-tracker/backend/internal/integration/persistence/model"
)

// entryRepository implements the adapter.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository instance.
func NewEntryRepository(db *gorm.DB) adapter.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// ListByUser retrieves all entries for a user, ordered by date ascending.
func (r *entryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.WeightEntry, error) {
	var models []model.WeightEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]entity.WeightEntry, 0, len(models))
	for _, m := range models {
		e, err := m.ToEntity()
		if err != nil {
			return nil, fmt.Errorf("corrupt entry row for user %s: %w", userID, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Upsert creates or replaces the entry keyed by (user, date).
func (r *entryRepository) Upsert(ctx context.Context, userID uuid.UUID, entry entity.WeightEntry) error {
	m := model.WeightEntryFromEntity(userID, entry)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
	}).Create(m)
	return result.Error
}

// UpsertBatch creates or replaces multiple entries in one transaction.
func (r *entryRepository) UpsertBatch(ctx context.Context, userID uuid.UUID, entries []entity.WeightEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			m := model.WeightEntryFromEntity(userID, e)
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
			}).Create(m)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// Delete removes the entry keyed by (user, date). Deleting a missing entry is
// not an error.
func (r *entryRepository) Delete(ctx context.Context, userID uuid.UUID, date valueobject.CivilDate) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.String()).
		Delete(&model.WeightEntryModel{})
	return result.Error
}
