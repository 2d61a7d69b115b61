package models

import (
	"fmt"
	"time"
)

// DateOnly is a calendar date with no time-of-day or zone component.
// The EMS API exchanges dates as "YYYY-MM-DD" strings; DateOnly keeps
// them in UTC so formatting and reparsing never shifts the day.
type DateOnly struct {
	t time.Time
}

// NewDate builds a DateOnly from its calendar parts.
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a canonical "YYYY-MM-DD" string.
func ParseDate(value string) (DateOnly, error) {
	parsed, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return DateOnly{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}

	return DateOnly{t: parsed}, nil
}

// String formats the date in its canonical "YYYY-MM-DD" form.
func (d DateOnly) String() string {
	return d.t.Format(time.DateOnly)
}

// Time returns the date as midnight UTC.
func (d DateOnly) Time() time.Time {
	return d.t
}

// IsZero reports whether the date is the zero value.
func (d DateOnly) IsZero() bool {
	return d.t.IsZero()
}

// Equal reports whether two values name the same calendar date.
func (d DateOnly) Equal(other DateOnly) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string. An empty string
// leaves the zero value, matching records with no date set.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == `null` || raw == `""` {
		*d = DateOnly{}
		return nil
	}

	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid date literal: %s", raw)
	}

	parsed, err := ParseDate(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
