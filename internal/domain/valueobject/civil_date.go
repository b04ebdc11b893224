// Package valueobject contains domain value objects for the Weight Tracker system.
package valueobject

import (
	"fmt"
	"time"
)

// civilDateLayout is the ISO day-precision layout used for storage and transport.
const civilDateLayout = "2006-01-02"

// shortMonthNames holds the abbreviated month names used for chart axis labels.
var shortMonthNames = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// CivilDate is a calendar date with day precision and no time zone.
// The zero value is not a valid date; use ParseCivilDate or NewCivilDate.
type CivilDate struct {
	t time.Time
}

// NewCivilDate creates a CivilDate from year, month and day.
func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseCivilDate parses an ISO "YYYY-MM-DD" string into a CivilDate.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return CivilDate{t: t}, nil
}

// CivilDateOf truncates a time.Time to its calendar date in the time's location.
func CivilDateOf(t time.Time) CivilDate {
	return NewCivilDate(t.Year(), t.Month(), t.Day())
}

// String returns the ISO "YYYY-MM-DD" form.
func (d CivilDate) String() string {
	return d.t.Format(civilDateLayout)
}

// IsZero reports whether the date is the zero value.
func (d CivilDate) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is strictly earlier than other.
func (d CivilDate) Before(other CivilDate) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d CivilDate) After(other CivilDate) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same calendar day.
func (d CivilDate) Equal(other CivilDate) bool {
	return d.t.Equal(other.t)
}

// AddDays returns the date n days after d (n may be negative).
func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDate{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns the date n calendar months after d.
func (d CivilDate) AddMonths(n int) CivilDate {
	return CivilDate{t: d.t.AddDate(0, n, 0)}
}

// DaysUntil returns the signed number of days from d to other.
func (d CivilDate) DaysUntil(other CivilDate) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// ShortLabel renders the date as day plus abbreviated month, e.g. "2 ene".
func (d CivilDate) ShortLabel() string {
	return fmt.Sprintf("%d %s", d.t.Day(), shortMonthNames[d.t.Month()-1])
}

// MarshalJSON encodes the date as an ISO string.
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO string date.
func (d *CivilDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", s)
	}
	parsed, err := ParseCivilDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
