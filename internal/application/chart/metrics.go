// Package chart derives chart-ready values from goal and entry data. All
// functions are pure; nothing here is persisted or cached.
package chart

import (
	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// tickInterval is the cadence of X-axis ticks in days.
const tickInterval = 14

// Direction is whether the goal represents weight loss or weight gain.
type Direction string

const (
	DirectionLoss Direction = "loss"
	DirectionGain Direction = "gain"
)

// Point is a single chart data point: an entry placed on the day axis.
type Point struct {
	Date      valueobject.CivilDate
	DateLabel string
	Day       int
	Weight    decimal.Decimal
}

// GoalDirection returns loss iff the target weight is below the start weight.
func GoalDirection(startWeight, targetWeight decimal.Decimal) Direction {
	if targetWeight.LessThan(startWeight) {
		return DirectionLoss
	}
	return DirectionGain
}

// WeightBounds returns the min and max of the start and target weights,
// independent of goal direction.
func WeightBounds(startWeight, targetWeight decimal.Decimal) (min, max decimal.Decimal) {
	return decimal.Min(startWeight, targetWeight), decimal.Max(startWeight, targetWeight)
}

// IsWeightInRange reports whether weight falls inside the goal bounds,
// inclusive on both ends.
func IsWeightInRange(weight, startWeight, targetWeight decimal.Decimal) bool {
	min, max := WeightBounds(startWeight, targetWeight)
	return weight.GreaterThanOrEqual(min) && weight.LessThanOrEqual(max)
}

// DayOffset returns the signed day difference between an entry's date and the
// goal start date. Entries predating the start yield negative offsets.
func DayOffset(startDate, entryDate valueobject.CivilDate) int {
	return startDate.DaysUntil(entryDate)
}

// TotalDays returns the integer day span of the goal.
func TotalDays(startDate, targetDate valueobject.CivilDate) int {
	return startDate.DaysUntil(targetDate)
}

// Ticks generates X-axis tick positions: multiples of 14 up to the span, with
// the span itself appended when it is not already the last tick. A 90-day
// span yields 0,14,28,42,56,70,84,90. Non-positive spans collapse to a
// single zero tick.
func Ticks(totalDays int) []int {
	if totalDays <= 0 {
		return []int{0}
	}
	ticks := make([]int, 0, totalDays/tickInterval+2)
	for i := 0; i <= totalDays; i += tickInterval {
		ticks = append(ticks, i)
	}
	if ticks[len(ticks)-1] != totalDays {
		ticks = append(ticks, totalDays)
	}
	return ticks
}

// AxisLabel renders the date at startDate+offset as a short day-and-month
// label for the X axis.
func AxisLabel(startDate valueobject.CivilDate, offset int) string {
	return startDate.AddDays(offset).ShortLabel()
}

// FavorableChange reports whether the delta between two consecutive entries
// moves toward the goal: a decrease for loss, an increase for gain.
func FavorableChange(direction Direction, delta decimal.Decimal) bool {
	if direction == DirectionLoss {
		return delta.IsNegative()
	}
	return delta.IsPositive()
}

// BuildSeries places entries on the day axis relative to the goal start date.
// Entries arrive pre-sorted by date; order is preserved.
func BuildSeries(entries []entity.WeightEntry, startDate valueobject.CivilDate) []Point {
	points := make([]Point, len(entries))
	for i, e := range entries {
		points[i] = Point{
			Date:      e.Date,
			DateLabel: e.Date.ShortLabel(),
			Day:       DayOffset(startDate, e.Date),
			Weight:    e.Weight,
		}
	}
	return points
}

// TotalChange returns the absolute weight difference between the first and
// last entry, or zero when fewer than two entries exist.
func TotalChange(entries []entity.WeightEntry) decimal.Decimal {
	if len(entries) < 2 {
		return decimal.Zero
	}
	return entries[0].Weight.Sub(entries[len(entries)-1].Weight).Abs()
}
