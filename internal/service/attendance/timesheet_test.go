package attendance

import (
	"math"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketWeek_FillsMissingDays(t *testing.T) {
	cal, _ := newTestCalendar(t, "UTC", utc(2024, 6, 12, 9, 0))
	week := clock.WeekOf("2024-06-10")

	days := []attendance.ReconciledDay{
		{
			RecordID: "a1", Date: "2024-06-10", Status: attendance.StatusPresent, WorkMode: attendance.WorkModeOffice,
			CheckIn: timePtr(utc(2024, 6, 10, 9, 0)), CheckOut: timePtr(utc(2024, 6, 10, 17, 30)),
		},
		{
			RecordID: "a2", Date: "2024-06-11", Status: attendance.StatusPresent, WorkMode: attendance.WorkModeWFH,
			CheckIn: timePtr(utc(2024, 6, 11, 9, 0)),
		},
	}

	cells := BucketWeek(cal, week, days, nil)
	require.Len(t, cells, 7)

	assert.Equal(t, clock.Day("2024-06-10"), cells[0].Date)
	assert.Equal(t, attendance.StatusPresent, cells[0].Status)
	assert.Equal(t, 8.5, cells[0].Hours)

	assert.Equal(t, attendance.StatusPresent, cells[1].Status)
	assert.Equal(t, 0.0, cells[1].Hours, "no check-out means no hours")

	for i := 2; i < 5; i++ {
		assert.Equal(t, attendance.StatusAbsent, cells[i].Status, "weekday %s", cells[i].Date)
	}
	assert.Equal(t, attendance.StatusWeekoff, cells[5].Status)
	assert.Equal(t, attendance.StatusWeekoff, cells[6].Status)
	assert.Equal(t, clock.Day("2024-06-16"), cells[6].Date)

	assert.Equal(t, 8.5, TotalHours(cells))
}

func TestBucketWeek_AlwaysSevenCells(t *testing.T) {
	cal, _ := newTestCalendar(t, "UTC", utc(2024, 6, 12, 9, 0))

	cells := BucketWeek(cal, clock.WeekOf("2024-06-12"), nil, nil)
	require.Len(t, cells, 7)
	assert.Equal(t, clock.Day("2024-06-10"), cells[0].Date, "week is normalised to Monday")

	var many []attendance.ReconciledDay
	for i := 0; i < 30; i++ {
		many = append(many, attendance.ReconciledDay{
			Date:   clock.Day("2024-06-01").AddDays(i),
			Status: attendance.StatusPresent,
		})
	}
	cells = BucketWeek(cal, clock.WeekOf("2024-06-10"), many, nil)
	require.Len(t, cells, 7)
	for _, c := range cells {
		assert.Equal(t, attendance.StatusPresent, c.Status)
	}
}

func TestBucketWeek_IgnoresDaysOutsideWeek(t *testing.T) {
	cal, _ := newTestCalendar(t, "UTC", utc(2024, 6, 12, 9, 0))

	cells := BucketWeek(cal, clock.WeekOf("2024-06-10"), []attendance.ReconciledDay{
		{RecordID: "before", Date: "2024-06-09", Status: attendance.StatusPresent},
		{RecordID: "after", Date: "2024-06-17", Status: attendance.StatusPresent},
	}, nil)

	require.Len(t, cells, 7)
	assert.Equal(t, attendance.StatusWeekoff, cells[6].Status, "Sunday before the week does not leak in")
	assert.Equal(t, attendance.StatusAbsent, cells[0].Status, "next Monday does not leak in")
}

func TestBucketWeek_FirstRecordWins(t *testing.T) {
	cal, _ := newTestCalendar(t, "UTC", utc(2024, 6, 12, 9, 0))

	cells := BucketWeek(cal, clock.WeekOf("2024-06-10"), []attendance.ReconciledDay{
		{RecordID: "first", Date: "2024-06-12", Status: attendance.StatusLeave},
		{RecordID: "second", Date: "2024-06-12", Status: attendance.StatusPresent},
	}, nil)

	assert.Equal(t, attendance.StatusLeave, cells[2].Status)
}

func TestBucketWeek_UsesCheckInWhenUndated(t *testing.T) {
	cal, _ := newTestCalendar(t, "Asia/Jakarta", utc(2024, 6, 12, 9, 0))

	cells := BucketWeek(cal, clock.WeekOf("2024-06-10"), []attendance.ReconciledDay{
		{RecordID: "a1", Status: attendance.StatusPresent, CheckIn: timePtr(utc(2024, 6, 10, 20, 0))},
	}, nil)

	assert.Equal(t, attendance.StatusPresent, cells[1].Status)
}

func TestBucketWeek_ApprovedLeaveFillsEmptyDays(t *testing.T) {
	cal, _ := newTestCalendar(t, "Asia/Jakarta", utc(2024, 6, 10, 2, 0))
	leaves := []leave.LeaveRequest{
		approvedLeave(testEmployeeID, "2024-06-10", "2024-06-10"),
		approvedLeave(testEmployeeID, "2024-06-15", "2024-06-15"),
	}
	pending := approvedLeave(testEmployeeID, "2024-06-12", "2024-06-12")
	pending.Status = leave.LeaveRequestStatusPending
	leaves = append(leaves, pending)

	cells := BucketWeek(cal, clock.WeekOf("2024-06-10"), nil, leaves)

	require.Len(t, cells, 7)
	assert.Equal(t, attendance.StatusLeave, cells[0].Status, "weekday on approved leave without a record")
	assert.Equal(t, attendance.StatusAbsent, cells[1].Status, "empty Tuesday stays absent")
	assert.Equal(t, attendance.StatusAbsent, cells[2].Status, "pending leave does not count")
	assert.Equal(t, attendance.StatusLeave, cells[5].Status, "leave wins over weekoff")
	assert.Equal(t, attendance.StatusWeekoff, cells[6].Status)
	assert.Zero(t, cells[0].Hours)
}

func TestWorkedHours(t *testing.T) {
	in := utc(2024, 6, 10, 9, 0)
	out := utc(2024, 6, 10, 17, 30)

	assert.Equal(t, 8.5, WorkedHours(nil, &in, &out))
	assert.Equal(t, 7.25, WorkedHours(floatPtr(7.25), &in, &out), "stored hours win")
	assert.Equal(t, 0.0, WorkedHours(nil, &in, nil))
	assert.Equal(t, 0.0, WorkedHours(nil, nil, nil))
	assert.Equal(t, 0.0, WorkedHours(nil, &out, &in), "never negative")

	odd := in.Add(8*time.Hour + 20*time.Minute)
	assert.Equal(t, 8.33, WorkedHours(nil, &in, &odd))
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 0.0, RoundHours(-1))
	assert.Equal(t, 0.0, RoundHours(math.NaN()))
	assert.Equal(t, 0.0, RoundHours(math.Inf(1)))
	assert.Equal(t, 1.23, RoundHours(1.234))
	assert.Equal(t, 1.24, RoundHours(1.2351))
}
