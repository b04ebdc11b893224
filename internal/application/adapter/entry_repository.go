// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// EntryRepository defines the server-tier persistence operations for weight
// entries. It is the durable half of the document store; the cache tier sits
// in front of it.
type EntryRepository interface {
	// ListByUser retrieves all entries for a user, ordered by date ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.WeightEntry, error)

	// Upsert creates or replaces the entry keyed by (user, date).
	Upsert(ctx context.Context, userID uuid.UUID, entry entity.WeightEntry) error

	// UpsertBatch creates or replaces multiple entries in one transaction.
	UpsertBatch(ctx context.Context, userID uuid.UUID, entries []entity.WeightEntry) error

	// Delete removes the entry keyed by (user, date). Deleting a missing
	// entry is not an error.
	Delete(ctx context.Context, userID uuid.UUID, date valueobject.CivilDate) error
}
