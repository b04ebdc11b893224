// Package goal contains goal-related use cases.
package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/entity"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// SaveGoalsInput represents the input for saving the user's goal document.
type SaveGoalsInput struct {
	UserID       uuid.UUID
	StartWeight  decimal.Decimal
	TargetWeight decimal.Decimal
	StartDate    valueobject.CivilDate
	TargetDate   valueobject.CivilDate
}

// SaveGoalsOutput represents the output of saving the goal document.
type SaveGoalsOutput struct {
	Goals entity.UserGoals
}

// SaveGoalsUseCase handles goal validation and persistence.
type SaveGoalsUseCase struct {
	sessions *sync.Manager
}

// NewSaveGoalsUseCase creates a new SaveGoalsUseCase instance.
func NewSaveGoalsUseCase(sessions *sync.Manager) *SaveGoalsUseCase {
	return &SaveGoalsUseCase{
		sessions: sessions,
	}
}

// Execute validates and saves the goal document wholesale.
func (uc *SaveGoalsUseCase) Execute(ctx context.Context, input SaveGoalsInput) (*SaveGoalsOutput, error) {
	if !input.StartWeight.IsPositive() || !input.TargetWeight.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidWeight,
			"weights must be greater than zero",
			domainerror.ErrInvalidWeight,
		)
	}

	if input.TargetWeight.Equal(input.StartWeight) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeEqualWeights,
			"target weight must differ from start weight",
			domainerror.ErrEqualWeights,
		)
	}

	if !input.TargetDate.After(input.StartDate) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidDateRange,
			"target date must be after start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	goals := entity.UserGoals{
		StartWeight:  input.StartWeight,
		TargetWeight: input.TargetWeight,
		StartDate:    input.StartDate,
		TargetDate:   input.TargetDate,
	}

	session := uc.sessions.Session(input.UserID)
	if err := session.Goal.SaveGoals(ctx, goals); err != nil {
		return nil, err
	}

	return &SaveGoalsOutput{
		Goals: goals,
	}, nil
}
