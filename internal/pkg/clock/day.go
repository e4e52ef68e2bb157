package clock

import (
	"fmt"
	"time"
)

// DayLayout is the wire format of a calendar day exchanged with the record store.
const DayLayout = "2006-01-02"

// Day is a timezone-naive calendar day in YYYY-MM-DD form.
// Two well-formed Days compare correctly as strings.
type Day string

// ParseDay parses a strict YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return Day(t.Format(DayLayout)), nil
}

// DayOf returns the calendar day of t as seen in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

func (d Day) String() string {
	return string(d)
}

// Valid reports whether d is a well-formed calendar day.
func (d Day) Valid() bool {
	_, err := time.Parse(DayLayout, string(d))
	return err == nil
}

// Time returns midnight UTC of d. Only meaningful for calendar arithmetic.
func (d Day) Time() time.Time {
	t, _ := time.Parse(DayLayout, string(d))
	return t
}

func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsWeekend reports whether d is a Saturday or Sunday.
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

func (d Day) Before(u Day) bool {
	return d < u
}

func (d Day) After(u Day) bool {
	return d > u
}

// Between reports whether from <= d <= to.
func (d Day) Between(from, to Day) bool {
	return d >= from && d <= to
}

// MondayOf returns the Monday of the Monday-Sunday week containing d.
// A Monday maps to itself; a Sunday maps back six days.
func MondayOf(d Day) Day {
	wd := int(d.Weekday())
	if wd == int(time.Sunday) {
		return d.AddDays(-6)
	}
	return d.AddDays(-(wd - 1))
}
