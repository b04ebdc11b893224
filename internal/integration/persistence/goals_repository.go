// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weight-tracker/backend/internal/application/adapter"
	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/integration/persistence/model"
)

// goalsRepository implements the adapter.GoalsRepository interface.
type goalsRepository struct {
	db *gorm.DB
}

// NewGoalsRepository creates a new goals repository instance.
func NewGoalsRepository(db *gorm.DB) adapter.GoalsRepository {
	return &goalsRepository{
		db: db,
	}
}

// FindByUser retrieves the user's goal document. A nil result with nil error
// means the document does not exist.
func (r *goalsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.UserGoals, error) {
	var m model.UserGoalsModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	goals, err := m.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("corrupt goals row for user %s: %w", userID, err)
	}
	return goals, nil
}

// Save creates or replaces the user's goal document wholesale.
func (r *goalsRepository) Save(ctx context.Context, userID uuid.UUID, goals entity.UserGoals) error {
	m := model.UserGoalsFromEntity(userID, goals)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_weight", "target_weight", "start_date", "target_date", "updated_at",
		}),
	}).Create(m)
	return result.Error
}
