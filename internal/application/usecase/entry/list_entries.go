// Package entry contains weight-entry use cases.
package entry

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/entity"
)

// ListEntriesInput represents the input for listing a user's entries.
type ListEntriesInput struct {
	UserID uuid.UUID
}

// ListEntriesOutput represents the output of listing entries, ordered by date
// ascending.
type ListEntriesOutput struct {
	Entries []entity.WeightEntry
}

// ListEntriesUseCase reads the reconciled entry list for a user.
type ListEntriesUseCase struct {
	sessions *sync.Manager
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(sessions *sync.Manager) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		sessions: sessions,
	}
}

// Execute waits for the user's entry controller to settle, then returns its
// current snapshot.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	session := uc.sessions.Session(input.UserID)
	if err := session.Entries.WaitReady(ctx); err != nil {
		return nil, err
	}
	if err := session.Entries.Err(); err != nil {
		return nil, err
	}

	return &ListEntriesOutput{
		Entries: session.Entries.Entries(),
	}, nil
}
