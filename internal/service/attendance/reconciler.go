package attendance

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// Reconciler produces the read-time attendance view. It never writes.
type Reconciler struct {
	cal *clock.Calendar
}

func NewReconciler(cal *clock.Calendar) *Reconciler {
	return &Reconciler{cal: cal}
}

// DayOf reduces a record to its calendar day in the reporting timezone. The
// stored date wins; the check-in instant is the fallback.
func (r *Reconciler) DayOf(rec attendance.Attendance) (clock.Day, bool) {
	if rec.Date != "" {
		if d, err := r.cal.Normalize(rec.Date); err == nil {
			return d, true
		}
	}
	if rec.CheckIn != nil {
		return r.cal.DayKey(*rec.CheckIn), true
	}
	return "", false
}

// Reconcile overlays leaves on records of a single employee. Records on an
// approved leave day show as Leave whatever their stored status. Output order
// follows input order.
func (r *Reconciler) Reconcile(records []attendance.Attendance, leaves []leave.LeaveRequest) []attendance.ReconciledDay {
	overlay := newLeaveOverlay(leaves)

	days := make([]attendance.ReconciledDay, 0, len(records))
	for _, rec := range records {
		days = append(days, r.reconcileOne(rec, overlay))
	}
	return days
}

// ReconcileAll reconciles records of many employees, each against only that
// employee's own leaves.
func (r *Reconciler) ReconcileAll(records []attendance.Attendance, leaves []leave.LeaveRequest) []attendance.ReconciledDay {
	byEmployee := make(map[string][]leave.LeaveRequest)
	for _, l := range leaves {
		byEmployee[l.EmployeeID] = append(byEmployee[l.EmployeeID], l)
	}

	overlays := make(map[string]leaveOverlay, len(byEmployee))
	days := make([]attendance.ReconciledDay, 0, len(records))
	for _, rec := range records {
		overlay, seen := overlays[rec.EmployeeID]
		if !seen {
			overlay = newLeaveOverlay(byEmployee[rec.EmployeeID])
			overlays[rec.EmployeeID] = overlay
		}
		days = append(days, r.reconcileOne(rec, overlay))
	}
	return days
}

func (r *Reconciler) reconcileOne(rec attendance.Attendance, overlay leaveOverlay) attendance.ReconciledDay {
	day, ok := r.DayOf(rec)
	if !ok {
		slog.Warn("Attendance record has no usable date", "attendance_id", rec.ID, "date", rec.Date)
	}

	status := storedStatus(rec)
	if ok && overlay.covers(day) {
		status = attendance.StatusLeave
	}
	return attendance.ReconciledDay{
		RecordID:     rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         day,
		Status:       status,
		CheckIn:      rec.CheckIn,
		CheckOut:     rec.CheckOut,
		Hours:        rec.Hours,
		WorkMode:     rec.WorkMode,
	}
}

// TodayRecord returns the reconciled day dated today in the reporting
// timezone, or nil. The returned value is a copy.
func (r *Reconciler) TodayRecord(days []attendance.ReconciledDay) *attendance.ReconciledDay {
	today := r.cal.Today()
	for _, d := range days {
		if d.Date == today {
			found := d
			return &found
		}
	}
	return nil
}

// storedStatus fills in a record that reached us without a status.
func storedStatus(rec attendance.Attendance) attendance.Status {
	if rec.Status != "" {
		return rec.Status
	}
	if rec.CheckIn != nil {
		return attendance.StatusPresent
	}
	return attendance.StatusAbsent
}
