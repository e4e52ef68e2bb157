package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // reporting timezone must resolve on hosts without zoneinfo
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant. Used by tests and replays.
type FixedClock struct {
	T time.Time
}

func (f FixedClock) Now() time.Time { return f.T }

// WeekRange is an inclusive Monday-Sunday span of calendar days.
type WeekRange struct {
	Start Day
	End   Day
	Label string
}

// Days returns the seven days of the week in order, Monday first.
func (w WeekRange) Days() []Day {
	days := make([]Day, 7)
	for i := range days {
		days[i] = w.Start.AddDays(i)
	}
	return days
}

// Contains reports whether d falls inside the week.
func (w WeekRange) Contains(d Day) bool {
	return d.Between(w.Start, w.End)
}

// WeekOf returns the Monday-Sunday week containing d.
func WeekOf(d Day) WeekRange {
	start := MondayOf(d)
	end := start.AddDays(6)
	return WeekRange{
		Start: start,
		End:   end,
		Label: weekLabel(start, end),
	}
}

func weekLabel(start, end Day) string {
	s, e := start.Time(), end.Time()
	if s.Year() != e.Year() {
		return fmt.Sprintf("%s - %s", s.Format("02 Jan 2006"), e.Format("02 Jan 2006"))
	}
	return fmt.Sprintf("%s - %s", s.Format("02 Jan"), e.Format("02 Jan 2006"))
}

// Calendar buckets instants into calendar days of one reporting timezone.
// Every day boundary in the system goes through a Calendar so that the
// attendance table and the week view never disagree.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

// NewCalendar loads the IANA timezone tz. A nil clock means the system clock.
func NewCalendar(tz string, c Clock) (*Calendar, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load reporting timezone %q: %w", tz, err)
	}
	if c == nil {
		c = SystemClock()
	}
	return &Calendar{loc: loc, clock: c}, nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the reporting timezone.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// DayKey maps an instant to its calendar day in the reporting timezone.
func (c *Calendar) DayKey(t time.Time) Day {
	return DayOf(t.In(c.loc))
}

// Today is the current calendar day in the reporting timezone.
func (c *Calendar) Today() Day {
	return c.DayKey(c.clock.Now())
}

// Normalize reduces a stored day value to a Day. Plain YYYY-MM-DD values are
// taken as-is; timestamped values are bucketed through DayKey.
func (c *Calendar) Normalize(raw string) (Day, error) {
	if d, err := ParseDay(raw); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return c.DayKey(t), nil
	}
	return "", fmt.Errorf("unrecognised day value %q", raw)
}

// CurrentWeek returns the week containing Today.
func (c *Calendar) CurrentWeek() WeekRange {
	return WeekOf(c.Today())
}

// WeeksBack returns n consecutive weeks ending with the current one, most
// recent first. n <= 0 yields an empty slice.
func (c *Calendar) WeeksBack(n int) []WeekRange {
	if n <= 0 {
		return []WeekRange{}
	}
	current := MondayOf(c.Today())
	weeks := make([]WeekRange, 0, n)
	for i := 0; i < n; i++ {
		weeks = append(weeks, WeekOf(current.AddDays(-7*i)))
	}
	return weeks
}

// FormatClock renders an instant as HH:MM in the reporting timezone.
func (c *Calendar) FormatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(c.loc).Format("15:04")
}
