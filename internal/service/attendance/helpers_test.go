package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-001"

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCalendar(t *testing.T, tz string, now time.Time) (*clock.Calendar, *stepClock) {
	t.Helper()
	c := &stepClock{now: now}
	cal, err := clock.NewCalendar(tz, c)
	require.NoError(t, err)
	return cal, c
}

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func approvedLeave(employeeID string, from, to clock.Day) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:         fmt.Sprintf("leave-%s-%s", employeeID, from),
		EmployeeID: employeeID,
		FromDate:   from,
		ToDate:     to,
		Status:     leave.LeaveRequestStatusApproved,
	}
}

// recordOf turns a reconciled day back into a record carrying the displayed
// status.
func recordOf(d attendance.ReconciledDay) attendance.Attendance {
	return attendance.Attendance{
		ID:           d.RecordID,
		EmployeeID:   d.EmployeeID,
		Date:         d.Date.String(),
		CheckIn:      d.CheckIn,
		CheckOut:     d.CheckOut,
		Hours:        d.Hours,
		Status:       d.Status,
		WorkMode:     d.WorkMode,
		EmployeeName: d.EmployeeName,
	}
}

var errConnRefused = fmt.Errorf("%w: dial tcp 127.0.0.1:5432: connection refused", attendance.ErrStoreUnavailable)

// flakyAttendanceRepo wraps the in-memory store with failure switches and
// call counters.
type flakyAttendanceRepo struct {
	*memory.AttendanceRepository
	failReads           bool
	failWrites          bool
	failReadsAfterWrite bool
	readErr             error
	creates             int
	patches             int
}

func (r *flakyAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	if r.failReads {
		return nil, errConnRefused
	}
	return r.AttendanceRepository.ListByEmployee(ctx, employeeID)
}

func (r *flakyAttendanceRepo) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	if r.failReads {
		return nil, errConnRefused
	}
	return r.AttendanceRepository.ListAll(ctx)
}

func (r *flakyAttendanceRepo) CreateCheckIn(ctx context.Context, payload attendance.CheckInPayload) (attendance.Attendance, error) {
	r.creates++
	if r.failWrites {
		return attendance.Attendance{}, errConnRefused
	}
	rec, err := r.AttendanceRepository.CreateCheckIn(ctx, payload)
	if err == nil && r.failReadsAfterWrite {
		r.failReads = true
	}
	return rec, err
}

func (r *flakyAttendanceRepo) PatchCheckOut(ctx context.Context, id string, payload attendance.CheckOutPayload) (attendance.Attendance, error) {
	r.patches++
	if r.failWrites {
		return attendance.Attendance{}, errConnRefused
	}
	rec, err := r.AttendanceRepository.PatchCheckOut(ctx, id, payload)
	if err == nil && r.failReadsAfterWrite {
		r.failReads = true
	}
	return rec, err
}

type flakyLeaveRepo struct {
	*memory.LeaveRequestRepository
	failReads bool
}

func (r *flakyLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if r.failReads {
		return nil, errConnRefused
	}
	return r.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
}

func (r *flakyLeaveRepo) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if r.failReads {
		return nil, errConnRefused
	}
	return r.LeaveRequestRepository.ListAll(ctx)
}
