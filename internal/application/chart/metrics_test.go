package chart_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weight-tracker/backend/internal/application/chart"
	"github.com/weight-tracker/backend/internal/domain/entity"
	"github.com/weight-tracker/backend/internal/domain/valueobject"
)

func date(y int, m time.Month, d int) valueobject.CivilDate {
	return valueobject.NewCivilDate(y, m, d)
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestTicks_90DaySpan(t *testing.T) {
	got := chart.Ticks(90)
	want := []int{0, 14, 28, 42, 56, 70, 84, 90}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTicks_SpanMultipleOf14(t *testing.T) {
	got := chart.Ticks(28)
	want := []int{0, 14, 28}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTicks_AlwaysStartAtZeroEndAtSpan(t *testing.T) {
	for _, span := range []int{0, 1, 13, 14, 15, 60, 89, 90, 365} {
		ticks := chart.Ticks(span)
		if ticks[0] != 0 {
			t.Errorf("span %d: first tick = %d, want 0", span, ticks[0])
		}
		if last := ticks[len(ticks)-1]; last != span {
			t.Errorf("span %d: last tick = %d, want %d", span, last, span)
		}
		if len(ticks) > 1 {
			for _, tick := range ticks[1 : len(ticks)-1] {
				if tick%14 != 0 || tick >= span {
					t.Errorf("span %d: interior tick %d is not a multiple of 14 below the span", span, tick)
				}
			}
		}
	}
}

func TestTicks_NonPositiveSpan(t *testing.T) {
	for _, span := range []int{0, -1, -90} {
		got := chart.Ticks(span)
		if len(got) != 1 || got[0] != 0 {
			t.Errorf("span %d: expected [0], got %v", span, got)
		}
	}
}

func TestGoalDirection(t *testing.T) {
	if got := chart.GoalDirection(dec(100), dec(80)); got != chart.DirectionLoss {
		t.Errorf("expected loss, got %s", got)
	}
	if got := chart.GoalDirection(dec(60), dec(75)); got != chart.DirectionGain {
		t.Errorf("expected gain, got %s", got)
	}
}

func TestWeightBounds_OrderIndependent(t *testing.T) {
	min1, max1 := chart.WeightBounds(dec(100), dec(80))
	min2, max2 := chart.WeightBounds(dec(80), dec(100))
	if !min1.Equal(min2) || !max1.Equal(max2) {
		t.Fatalf("bounds differ under argument swap: [%s,%s] vs [%s,%s]", min1, max1, min2, max2)
	}
	if !min1.Equal(dec(80)) || !max1.Equal(dec(100)) {
		t.Fatalf("expected [80,100], got [%s,%s]", min1, max1)
	}
}

func TestIsWeightInRange(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   bool
	}{
		{"inside", 90, true},
		{"at lower bound", 80, true},
		{"at upper bound", 100, true},
		{"below", 79.9, false},
		{"above", 100.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chart.IsWeightInRange(dec(tt.weight), dec(100), dec(80)); got != tt.want {
				t.Errorf("IsWeightInRange(%v) = %v, want %v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestDayOffset(t *testing.T) {
	start := date(2025, time.January, 1)
	if got := chart.DayOffset(start, date(2025, time.January, 15)); got != 14 {
		t.Errorf("expected 14, got %d", got)
	}
	// Entries predating the goal start are not rejected.
	if got := chart.DayOffset(start, date(2024, time.December, 30)); got != -2 {
		t.Errorf("expected -2, got %d", got)
	}
	// Stable under re-derivation.
	if first, second := chart.DayOffset(start, date(2025, time.February, 1)), chart.DayOffset(start, date(2025, time.February, 1)); first != second {
		t.Errorf("offset not stable: %d vs %d", first, second)
	}
}

func TestBuildSeries_EndToEnd(t *testing.T) {
	start := date(2025, time.January, 1)
	target := date(2025, time.April, 1)
	entries := []entity.WeightEntry{
		entity.NewWeightEntry(date(2025, time.January, 1), dec(100)),
		entity.NewWeightEntry(date(2025, time.January, 15), dec(98)),
		entity.NewWeightEntry(date(2025, time.February, 1), dec(96)),
	}

	if got := chart.TotalDays(start, target); got != 90 {
		t.Fatalf("expected totalDays=90, got %d", got)
	}

	series := chart.BuildSeries(entries, start)
	wantDays := []int{0, 14, 31}
	for i, p := range series {
		if p.Day != wantDays[i] {
			t.Errorf("entry %d: day offset = %d, want %d", i, p.Day, wantDays[i])
		}
	}

	ticks := chart.Ticks(90)
	if ticks[0] != 0 || ticks[len(ticks)-1] != 90 {
		t.Errorf("expected ticks from 0 to 90, got %v", ticks)
	}
}

func TestFavorableChange(t *testing.T) {
	if !chart.FavorableChange(chart.DirectionLoss, dec(-0.5)) {
		t.Error("decrease should be favorable for a loss goal")
	}
	if chart.FavorableChange(chart.DirectionLoss, dec(0.5)) {
		t.Error("increase should not be favorable for a loss goal")
	}
	if !chart.FavorableChange(chart.DirectionGain, dec(0.5)) {
		t.Error("increase should be favorable for a gain goal")
	}
	if chart.FavorableChange(chart.DirectionGain, dec(-0.5)) {
		t.Error("decrease should not be favorable for a gain goal")
	}
}

func TestTotalChange(t *testing.T) {
	entries := []entity.WeightEntry{
		entity.NewWeightEntry(date(2025, time.January, 1), dec(100)),
		entity.NewWeightEntry(date(2025, time.February, 1), dec(96.5)),
	}
	if got := chart.TotalChange(entries); !got.Equal(dec(3.5)) {
		t.Errorf("expected 3.5, got %s", got)
	}
	if got := chart.TotalChange(entries[:1]); !got.IsZero() {
		t.Errorf("expected zero for a single entry, got %s", got)
	}
}

func TestAxisLabel(t *testing.T) {
	start := date(2025, time.January, 1)
	if got := chart.AxisLabel(start, 0); got != "1 ene" {
		t.Errorf("expected %q, got %q", "1 ene", got)
	}
	if got := chart.AxisLabel(start, 45); got != "15 feb" {
		t.Errorf("expected %q, got %q", "15 feb", got)
	}
}
