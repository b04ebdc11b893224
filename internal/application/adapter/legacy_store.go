// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/domain/entity"
)

// LegacyEntryStore reads entries recorded by the pre-sync local storage
// format. Used once per user to migrate data into the document store.
type LegacyEntryStore interface {
	// Load returns all legacy entries for the user, or an empty slice when
	// there is nothing to migrate.
	Load(ctx context.Context, userID uuid.UUID) ([]entity.WeightEntry, error)

	// Clear removes the user's legacy data after a successful migration.
	Clear(ctx context.Context, userID uuid.UUID) error
}
