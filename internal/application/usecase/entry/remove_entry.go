// Package entry contains weight-entry use cases.
package entry

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// RemoveEntryInput represents the input for deleting a weight entry.
type RemoveEntryInput struct {
	UserID uuid.UUID
	Date   valueobject.CivilDate
}

// RemoveEntryUseCase handles entry deletion. Deleting a date with no entry is
// a no-op, not an error.
type RemoveEntryUseCase struct {
	sessions *sync.Manager
}

// NewRemoveEntryUseCase creates a new RemoveEntryUseCase instance.
func NewRemoveEntryUseCase(sessions *sync.Manager) *RemoveEntryUseCase {
	return &RemoveEntryUseCase{
		sessions: sessions,
	}
}

// Execute deletes the entry keyed by date.
func (uc *RemoveEntryUseCase) Execute(ctx context.Context, input RemoveEntryInput) error {
	session := uc.sessions.Session(input.UserID)
	return session.Entries.RemoveEntry(ctx, input.Date)
}
