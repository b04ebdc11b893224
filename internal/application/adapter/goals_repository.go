// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/domain/entity"
)

// GoalsRepository defines the server-tier persistence operations for the
// singleton goal document.
type GoalsRepository interface {
	// FindByUser retrieves the user's goal document. A nil result with nil
	// error means the document does not exist.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.UserGoals, error)

	// Save creates or replaces the user's goal document wholesale.
	Save(ctx context.Context, userID uuid.UUID, goals entity.UserGoals) error
}
