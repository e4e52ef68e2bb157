package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendar(t *testing.T, tz string, now time.Time) *Calendar {
	t.Helper()
	cal, err := NewCalendar(tz, FixedClock{T: now})
	require.NoError(t, err)
	return cal
}

func TestMondayOf(t *testing.T) {
	cases := []struct {
		input Day
		want  Day
	}{
		{"2024-06-10", "2024-06-10"}, // Monday
		{"2024-06-11", "2024-06-10"},
		{"2024-06-15", "2024-06-10"}, // Saturday
		{"2024-06-16", "2024-06-10"}, // Sunday belongs to the preceding Monday
		{"2024-06-17", "2024-06-17"},
		{"2024-01-01", "2024-01-01"},
		{"2023-12-31", "2023-12-25"},
		{"2024-03-03", "2024-02-26"}, // across a leap February
	}
	for _, c := range cases {
		got := MondayOf(c.input)
		if got != c.want {
			t.Errorf("MondayOf(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-06-10"), d)

	for _, bad := range []string{"", "2024-6-10", "10/06/2024", "2024-02-30", "2024-06-10T00:00:00Z"} {
		_, err := ParseDay(bad)
		assert.Error(t, err, "ParseDay(%q)", bad)
	}
}

func TestDay_Arithmetic(t *testing.T) {
	d := Day("2024-02-28")
	assert.Equal(t, Day("2024-02-29"), d.AddDays(1))
	assert.Equal(t, Day("2024-03-01"), d.AddDays(2))
	assert.Equal(t, Day("2024-02-21"), d.AddDays(-7))

	assert.True(t, Day("2024-06-15").IsWeekend())
	assert.True(t, Day("2024-06-16").IsWeekend())
	assert.False(t, Day("2024-06-14").IsWeekend())

	assert.True(t, Day("2024-06-10").Between("2024-06-10", "2024-06-10"))
	assert.True(t, Day("2024-06-12").Between("2024-06-10", "2024-06-14"))
	assert.False(t, Day("2024-06-15").Between("2024-06-10", "2024-06-14"))
}

func TestCalendar_DayKey(t *testing.T) {
	cal := newTestCalendar(t, "Asia/Jakarta", time.Now())

	// 20:00 UTC on the 9th is already the 10th in UTC+7.
	instant := time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, Day("2024-06-10"), cal.DayKey(instant))

	// The same instant expressed in another zone buckets identically.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-06-10"), cal.DayKey(instant.In(ny)))

	utc := newTestCalendar(t, "UTC", time.Now())
	assert.Equal(t, Day("2024-06-09"), utc.DayKey(instant))
}

func TestCalendar_Today(t *testing.T) {
	now := time.Date(2024, 6, 16, 18, 30, 0, 0, time.UTC)
	cal := newTestCalendar(t, "Asia/Jakarta", now)

	assert.Equal(t, Day("2024-06-17"), cal.Today())
	assert.Equal(t, "Asia/Jakarta", cal.Location().String())
}

func TestCalendar_Normalize(t *testing.T) {
	cal := newTestCalendar(t, "Asia/Jakarta", time.Now())

	d, err := cal.Normalize("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-06-10"), d)

	d, err = cal.Normalize("2024-06-09T18:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, Day("2024-06-10"), d)

	_, err = cal.Normalize("yesterday")
	assert.Error(t, err)
}

func TestCalendar_WeeksBack(t *testing.T) {
	now := time.Date(2024, 6, 12, 3, 0, 0, 0, time.UTC) // Wednesday
	cal := newTestCalendar(t, "UTC", now)

	weeks := cal.WeeksBack(3)
	require.Len(t, weeks, 3)

	assert.Equal(t, Day("2024-06-10"), weeks[0].Start)
	assert.Equal(t, Day("2024-06-16"), weeks[0].End)
	assert.Equal(t, Day("2024-06-03"), weeks[1].Start)
	assert.Equal(t, Day("2024-05-27"), weeks[2].Start)
	assert.Equal(t, Day("2024-06-02"), weeks[2].End)

	for _, w := range weeks {
		assert.Equal(t, time.Monday, w.Start.Weekday())
		assert.Equal(t, time.Sunday, w.End.Weekday())
	}

	assert.Equal(t, "10 Jun - 16 Jun 2024", weeks[0].Label)
	assert.Equal(t, weeks, cal.WeeksBack(3), "labels and ranges must be stable")
	assert.Empty(t, cal.WeeksBack(0))
}

func TestWeekOf_YearBoundaryLabel(t *testing.T) {
	w := WeekOf("2025-01-01")
	assert.Equal(t, Day("2024-12-30"), w.Start)
	assert.Equal(t, Day("2025-01-05"), w.End)
	assert.Equal(t, "30 Dec 2024 - 05 Jan 2025", w.Label)

	days := w.Days()
	require.Len(t, days, 7)
	assert.Equal(t, Day("2024-12-30"), days[0])
	assert.Equal(t, Day("2025-01-05"), days[6])
	assert.True(t, w.Contains("2025-01-03"))
	assert.False(t, w.Contains("2025-01-06"))
}

func TestCalendar_FormatClock(t *testing.T) {
	cal := newTestCalendar(t, "Asia/Jakarta", time.Now())
	in := time.Date(2024, 6, 10, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "09:00", cal.FormatClock(&in))
	assert.Equal(t, "", cal.FormatClock(nil))
}

func TestNewCalendar_InvalidTimezone(t *testing.T) {
	_, err := NewCalendar("Mars/Olympus_Mons", nil)
	assert.Error(t, err)
}
