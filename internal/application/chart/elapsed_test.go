package chart_test

import (
	"testing"
	"time"

	"github.com/weight-tracker/backend/internal/application/chart"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

func TestElapsedLabel(t *testing.T) {
	tests := []struct {
		name string
		from valueobject.CivilDate
		to   valueobject.CivilDate
		want string
	}{
		{"days only", date(2025, time.January, 1), date(2025, time.January, 4), "3d"},
		{"weeks and days", date(2025, time.January, 1), date(2025, time.January, 12), "1s 4d"},
		{"whole months", date(2025, time.January, 15), date(2025, time.March, 15), "2m"},
		{"months and weeks", date(2025, time.January, 1), date(2025, time.February, 10), "1m 1s"},
		{"zero elapsed", date(2025, time.January, 1), date(2025, time.January, 1), "0d"},
		{"exactly one week", date(2025, time.January, 1), date(2025, time.January, 8), "1s 0d"},
		{"months and days", date(2025, time.January, 1), date(2025, time.February, 4), "1m 3d"},
		{"a full year", date(2024, time.March, 10), date(2025, time.March, 10), "12m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chart.ElapsedLabel(tt.from, tt.to); got != tt.want {
				t.Errorf("ElapsedLabel(%s, %s) = %q, want %q", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
