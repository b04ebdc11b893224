package chart

import (
	"fmt"

	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

// ElapsedLabel renders the time between two dates as a compact label. Whole
// months are consumed first, then whole weeks from the remainder, then days.
// At most two unit levels appear ("2m", "1m 1s", "1s 4d", "3d"); months pair
// with weeks when weeks are non-zero, otherwise with days. Zero elapsed time
// renders as "0d".
func ElapsedLabel(from, to valueobject.CivilDate) string {
	cursor := from

	months := wholeMonthsBetween(cursor, to)
	if months > 0 {
		cursor = cursor.AddMonths(months)
	}

	days := cursor.DaysUntil(to)
	weeks := days / 7
	days -= weeks * 7

	if months > 0 {
		switch {
		case weeks > 0:
			return fmt.Sprintf("%dm %ds", months, weeks)
		case days > 0:
			return fmt.Sprintf("%dm %dd", months, days)
		default:
			return fmt.Sprintf("%dm", months)
		}
	}
	if weeks > 0 {
		return fmt.Sprintf("%ds %dd", weeks, days)
	}
	return fmt.Sprintf("%dd", days)
}

// wholeMonthsBetween returns the number of complete calendar months from from
// to to, zero when to precedes from.
func wholeMonthsBetween(from, to valueobject.CivilDate) int {
	if !from.Before(to) {
		return 0
	}
	months := 0
	for !from.AddMonths(months + 1).After(to) {
		months++
	}
	return months
}
