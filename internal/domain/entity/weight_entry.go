// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// WeightEntry represents a single dated weight measurement.
// The date is the unique key per user; entries are never mutated in place,
// an edit is a create-or-replace under the same date.
type WeightEntry struct {
	Date   valueobject.CivilDate
	Weight decimal.Decimal
}

// NewWeightEntry creates a WeightEntry for the given date and weight.
func NewWeightEntry(date valueobject.CivilDate, weight decimal.Decimal) WeightEntry {
	return WeightEntry{
		Date:   date,
		Weight: weight,
	}
}
