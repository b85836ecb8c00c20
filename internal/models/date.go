package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the wire format for all statement dates (ISO-8601 calendar date)
const DateFormat = "2006-01-02"

// Date is a calendar date without a time component.
// Statement data carries dates as "YYYY-MM-DD" strings; Date keeps the
// marshaled form stable so repeated runs produce identical bytes.
type Date struct {
	t time.Time
}

// NewDate constructs a Date from year, month, day in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date (UTC)
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero reports whether the date is the zero value (unset)
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the underlying time at midnight UTC
func (d Date) Time() time.Time {
	return d.t
}

// Year returns the calendar year
func (d Date) Year() int {
	return d.t.Year()
}

// Month returns the calendar month
func (d Date) Month() time.Month {
	return d.t.Month()
}

// DayOfMonth returns the day of month (1-31)
func (d Date) DayOfMonth() int {
	return d.t.Day()
}

// ISOWeekday returns the ISO-8601 day of week: 1=Monday .. 7=Sunday
func (d Date) ISOWeekday() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 7 // time.Sunday is 0
	}
	return wd
}

// IsWeekend reports whether the date falls on Saturday or Sunday
func (d Date) IsWeekend() bool {
	return d.ISOWeekday() >= 6
}

// Before reports whether d is strictly before other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether two dates are the same calendar day
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays returns the date n days later (negative n for earlier)
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of whole days from other to d.
// Positive when d is after other.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// String returns the wire form "YYYY-MM-DD"
func (d Date) String() string {
	return d.t.Format(DateFormat)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
