// Package goal contains goal-related use cases.
package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/entity"
)

// GetGoalsInput represents the input for reading the user's goal document.
type GetGoalsInput struct {
	UserID uuid.UUID
}

// GetGoalsOutput represents the output of reading the goal document. A nil
// Goals means the user has not created goals yet.
type GetGoalsOutput struct {
	Goals *entity.UserGoals
}

// GetGoalsUseCase reads the reconciled goal document for a user.
type GetGoalsUseCase struct {
	sessions *sync.Manager
}

// NewGetGoalsUseCase creates a new GetGoalsUseCase instance.
func NewGetGoalsUseCase(sessions *sync.Manager) *GetGoalsUseCase {
	return &GetGoalsUseCase{
		sessions: sessions,
	}
}

// Execute waits for the user's goal controller to settle, then returns its
// resolved view. Absence is a valid result, not an error.
func (uc *GetGoalsUseCase) Execute(ctx context.Context, input GetGoalsInput) (*GetGoalsOutput, error) {
	session := uc.sessions.Session(input.UserID)
	if err := session.Goal.WaitReady(ctx); err != nil {
		return nil, err
	}
	if err := session.Goal.Err(); err != nil {
		return nil, err
	}

	return &GetGoalsOutput{
		Goals: session.Goal.Goals(),
	}, nil
}
