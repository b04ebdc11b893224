// Package progress contains the use case that derives chart-ready progress
// metrics from a user's goals and entries.
package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/application/chart"
	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// GetProgressInput represents the input for computing progress metrics.
type GetProgressInput struct {
	UserID uuid.UUID

	// Today overrides the reference date for elapsed-time labels. Zero means
	// the current date.
	Today valueobject.CivilDate
}

// Tick is one X-axis tick: a day offset and its rendered date label.
type Tick struct {
	Day   int
	Label string
}

// GetProgressOutput represents the derived metrics. When the user has no
// goals, HasGoals is false and only Points carries data, placed on a zero
// axis.
type GetProgressOutput struct {
	HasGoals bool
	Goals    *entity.UserGoals

	Points      []chart.Point
	Ticks       []Tick
	TotalDays   int
	MinWeight   decimal.Decimal
	MaxWeight   decimal.Decimal
	Direction   chart.Direction
	Elapsed     string
	TotalChange decimal.Decimal
}

// GetProgressUseCase composes the reconciled goal and entry views into the
// values the progress chart renders.
type GetProgressUseCase struct {
	sessions *sync.Manager
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(sessions *sync.Manager) *GetProgressUseCase {
	return &GetProgressUseCase{
		sessions: sessions,
	}
}

// Execute waits for both controllers to settle and derives the chart metrics.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
	session := uc.sessions.Session(input.UserID)
	if err := session.WaitReady(ctx); err != nil {
		return nil, err
	}
	if err := session.Goal.Err(); err != nil {
		return nil, err
	}
	if err := session.Entries.Err(); err != nil {
		return nil, err
	}

	entries := session.Entries.Entries()
	goals := session.Goal.Goals()

	if goals == nil {
		// Without goals there is no axis to anchor; render entries against
		// the first entry's date so the chart still shows the trend.
		var start valueobject.CivilDate
		if len(entries) > 0 {
			start = entries[0].Date
		}
		return &GetProgressOutput{
			HasGoals:    false,
			Points:      chart.BuildSeries(entries, start),
			TotalChange: chart.TotalChange(entries),
		}, nil
	}

	today := input.Today
	if today.IsZero() {
		today = valueobject.CivilDateOf(time.Now())
	}

	totalDays := chart.TotalDays(goals.StartDate, goals.TargetDate)
	minWeight, maxWeight := chart.WeightBounds(goals.StartWeight, goals.TargetWeight)

	tickDays := chart.Ticks(totalDays)
	ticks := make([]Tick, len(tickDays))
	for i, day := range tickDays {
		ticks[i] = Tick{
			Day:   day,
			Label: chart.AxisLabel(goals.StartDate, day),
		}
	}

	return &GetProgressOutput{
		HasGoals:    true,
		Goals:       goals,
		Points:      chart.BuildSeries(entries, goals.StartDate),
		Ticks:       ticks,
		TotalDays:   totalDays,
		MinWeight:   minWeight,
		MaxWeight:   maxWeight,
		Direction:   chart.GoalDirection(goals.StartWeight, goals.TargetWeight),
		Elapsed:     chart.ElapsedLabel(goals.StartDate, today),
		TotalChange: chart.TotalChange(entries),
	}, nil
}
