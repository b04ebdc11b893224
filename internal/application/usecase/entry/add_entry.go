// Package entry contains weight-entry use cases.
package entry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/application/chart"
	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/entity"
	domainerror "github.com/weight-tracker/backend/internal/domain/error"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// AddEntryInput represents the input for recording a weight entry.
type AddEntryInput struct {
	UserID uuid.UUID
	Date   valueobject.CivilDate
	Weight decimal.Decimal
}

// AddEntryOutput represents the output of recording a weight entry.
type AddEntryOutput struct {
	Entry entity.WeightEntry
}

// AddEntryUseCase handles entry validation and persistence. An entry for an
// existing date replaces the previous value.
type AddEntryUseCase struct {
	sessions *sync.Manager
}

// NewAddEntryUseCase creates a new AddEntryUseCase instance.
func NewAddEntryUseCase(sessions *sync.Manager) *AddEntryUseCase {
	return &AddEntryUseCase{
		sessions: sessions,
	}
}

// Execute validates and writes the entry. When the user has resolved goals,
// the weight must fall inside the goal bounds.
func (uc *AddEntryUseCase) Execute(ctx context.Context, input AddEntryInput) (*AddEntryOutput, error) {
	if !input.Weight.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidWeight,
			"weight must be greater than zero",
			domainerror.ErrInvalidWeight,
		)
	}

	session := uc.sessions.Session(input.UserID)
	if goals := session.Goal.Goals(); goals != nil {
		if !chart.IsWeightInRange(input.Weight, goals.StartWeight, goals.TargetWeight) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeWeightOutOfRange,
				"weight is outside the goal range",
				domainerror.ErrWeightOutOfRange,
			)
		}
	}

	e := entity.NewWeightEntry(input.Date, input.Weight)
	if err := session.Entries.AddEntry(ctx, e); err != nil {
		return nil, err
	}

	return &AddEntryOutput{
		Entry: e,
	}, nil
}
