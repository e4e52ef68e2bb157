package attendance

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type interval struct {
	from clock.Day
	to   clock.Day
}

// leaveOverlay holds the approved leave intervals of one employee. It is the
// only place where a day is compared against leave bounds.
type leaveOverlay struct {
	intervals []interval
}

func newLeaveOverlay(leaves []leave.LeaveRequest) leaveOverlay {
	var o leaveOverlay
	for _, l := range leaves {
		if l.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		from, to, err := l.Interval()
		if err != nil {
			slog.Warn("Skipping malformed leave interval",
				"leave_id", l.ID,
				"employee_id", l.EmployeeID,
				"from_date", l.FromDate,
				"to_date", l.ToDate,
				"error", err)
			continue
		}
		o.intervals = append(o.intervals, interval{from: from, to: to})
	}
	return o
}

// covers is inclusive on both bounds.
func (o leaveOverlay) covers(day clock.Day) bool {
	for _, iv := range o.intervals {
		if day.Between(iv.from, iv.to) {
			return true
		}
	}
	return false
}

// IsOnLeave reports whether day is covered by an approved leave in leaves.
// Requests with a malformed or inverted interval are ignored.
func IsOnLeave(day clock.Day, leaves []leave.LeaveRequest) bool {
	return newLeaveOverlay(leaves).covers(day)
}
