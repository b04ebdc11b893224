// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// UserGoals is the single current goal record for a user. It is a snapshot,
// not a history: edits replace the whole document.
type UserGoals struct {
	StartWeight  decimal.Decimal
	TargetWeight decimal.Decimal
	StartDate    valueobject.CivilDate
	TargetDate   valueobject.CivilDate
}

// TotalDays returns the integer day span between the start and target dates.
func (g *UserGoals) TotalDays() int {
	return g.StartDate.DaysUntil(g.TargetDate)
}
