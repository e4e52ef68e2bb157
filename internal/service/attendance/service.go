package attendance

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
	cal        *clock.Calendar
	reconciler *Reconciler
	weeksBack  int
}

// employeeView is one employee's data as last confirmed by the store.
type employeeView struct {
	records []attendance.Attendance
	leaves  []leave.LeaveRequest
	days    []attendance.ReconciledDay
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	gate, view, err := a.gateFor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	// Rejected here, the store is never called.
	if err := gate.Authorize(ActionCheckIn); err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	now := a.cal.Now()
	created, err := a.AttendanceRepository.CreateCheckIn(ctx, attendance.CheckInPayload{
		EmployeeID: req.EmployeeID,
		Date:       a.cal.DayKey(now),
		CheckIn:    now.UTC(),
		Status:     attendance.StatusPresent,
		WorkMode:   attendance.WorkMode(req.WorkMode),
	})
	if err != nil {
		return attendance.AttendanceStatusResponse{}, fmt.Errorf("failed to create check-in: %w", err)
	}

	slog.Info("Employee checked in",
		"employee_id", req.EmployeeID,
		"attendance_id", created.ID,
		"work_mode", req.WorkMode)

	return a.statusAfterWrite(ctx, req.EmployeeID, view, created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	gate, view, err := a.gateFor(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	if err := gate.Authorize(ActionCheckOut); err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	// CheckedIn guarantees a record with a check-in.
	today := gate.Today()
	nowUTC := a.cal.Now().UTC()
	hours := RoundHours(nowUTC.Sub(*today.CheckIn).Hours())

	updated, err := a.AttendanceRepository.PatchCheckOut(ctx, today.RecordID, attendance.CheckOutPayload{
		CheckOut: nowUTC,
		Hours:    &hours,
	})
	if err != nil {
		return attendance.AttendanceStatusResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	slog.Info("Employee checked out",
		"employee_id", req.EmployeeID,
		"attendance_id", updated.ID,
		"hours", hours)

	return a.statusAfterWrite(ctx, req.EmployeeID, view, updated), nil
}

// GetStatus implements attendance.AttendanceService.
// Unlike list reads, a failed load is returned: an unconfirmed view must
// never enable an action.
func (a *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string) (attendance.AttendanceStatusResponse, error) {
	gate, _, err := a.gateFor(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}
	return a.mapGateToResponse(gate), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string) (attendance.ListAttendanceResponse, error) {
	view, err := a.readEmployeeView(ctx, employeeID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return a.mapDaysToListResponse(sortForDisplay(view.days)), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context) (attendance.ListAttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListAll(ctx)
	if err != nil {
		return degradeList(err, "")
	}

	leaves, err := a.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return degradeList(err, "")
	}

	days := a.reconciler.ReconcileAll(records, leaves)
	return a.mapDaysToListResponse(sortForDisplay(days)), nil
}

// GetTimesheet implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTimesheet(ctx context.Context, filter attendance.TimesheetFilter) (attendance.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.TimesheetResponse{}, err
	}

	week := a.cal.CurrentWeek()
	if filter.WeekStart != nil && *filter.WeekStart != "" {
		week = clock.WeekOf(clock.Day(*filter.WeekStart))
	}

	view, err := a.readEmployeeView(ctx, filter.EmployeeID)
	if err != nil {
		return attendance.TimesheetResponse{}, err
	}

	cells := BucketWeek(a.cal, week, view.days, view.leaves)

	responses := make([]attendance.TimesheetCellResponse, 0, len(cells))
	for _, c := range cells {
		responses = append(responses, attendance.TimesheetCellResponse{
			Date:         c.Date.String(),
			Weekday:      c.Date.Weekday().String(),
			Status:       string(c.Status),
			CheckInTime:  a.timePtrToString(c.CheckIn),
			CheckOutTime: a.timePtrToString(c.CheckOut),
			WorkMode:     string(c.WorkMode),
			Hours:        c.Hours,
		})
	}

	return attendance.TimesheetResponse{
		EmployeeID: filter.EmployeeID,
		Week:       mapWeekToResponse(week),
		Days:       responses,
		TotalHours: TotalHours(cells),
	}, nil
}

// ListWeeks implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListWeeks(ctx context.Context, filter attendance.WeeksFilter) ([]attendance.WeekRangeResponse, error) {
	if err := filter.Validate(a.weeksBack); err != nil {
		return nil, err
	}

	weeks := a.cal.WeeksBack(filter.N)
	responses := make([]attendance.WeekRangeResponse, 0, len(weeks))
	for _, w := range weeks {
		responses = append(responses, mapWeekToResponse(w))
	}
	return responses, nil
}

// ExportMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportMyAttendance(ctx context.Context, employeeID string) (attendance.ExportResult, error) {
	view, err := a.readEmployeeView(ctx, employeeID)
	if err != nil {
		return attendance.ExportResult{}, err
	}

	return attendance.ExportResult{
		Header: attendance.ExportHeader,
		Rows:   ExportRows(a.cal, sortForDisplay(view.days)),
	}, nil
}

// loadEmployeeView reads records and leaves of one employee and reconciles
// them. Errors are returned as-is.
func (a *AttendanceServiceImpl) loadEmployeeView(ctx context.Context, employeeID string) (employeeView, error) {
	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return employeeView{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	leaves, err := a.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return employeeView{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return employeeView{
		records: records,
		leaves:  leaves,
		days:    a.reconciler.Reconcile(records, leaves),
	}, nil
}

// readEmployeeView is loadEmployeeView for display reads: an unavailable
// store yields an empty view instead of an error.
func (a *AttendanceServiceImpl) readEmployeeView(ctx context.Context, employeeID string) (employeeView, error) {
	view, err := a.loadEmployeeView(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrStoreUnavailable) {
			slog.Error("Record store unavailable, showing no records", "employee_id", employeeID, "error", err)
			return employeeView{days: []attendance.ReconciledDay{}}, nil
		}
		return employeeView{}, err
	}
	return view, nil
}

func degradeList(err error, employeeID string) (attendance.ListAttendanceResponse, error) {
	if errors.Is(err, attendance.ErrStoreUnavailable) {
		slog.Error("Record store unavailable, showing no records", "employee_id", employeeID, "error", err)
		return attendance.ListAttendanceResponse{Attendances: []attendance.AttendanceResponse{}}, nil
	}
	return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
}

func (a *AttendanceServiceImpl) gateFor(ctx context.Context, employeeID string) (*Gate, employeeView, error) {
	view, err := a.loadEmployeeView(ctx, employeeID)
	if err != nil {
		return nil, employeeView{}, err
	}

	gate := NewGate(employeeID)
	gate.Refresh(a.todayView(view))
	return gate, view, nil
}

func (a *AttendanceServiceImpl) todayView(view employeeView) TodayView {
	today := a.cal.Today()
	return TodayView{
		Day:     today,
		Record:  a.reconciler.TodayRecord(view.days),
		OnLeave: IsOnLeave(today, view.leaves),
	}
}

// statusAfterWrite recomputes the gate after an acknowledged write. A fresh
// read is preferred; if it fails the acknowledged record is merged into the
// view the write was authorised against.
func (a *AttendanceServiceImpl) statusAfterWrite(ctx context.Context, employeeID string, prior employeeView, written attendance.Attendance) attendance.AttendanceStatusResponse {
	gate, _, err := a.gateFor(ctx, employeeID)
	if err == nil {
		return a.mapGateToResponse(gate)
	}

	slog.Warn("Failed to reload attendance after write, using acknowledged record",
		"employee_id", employeeID,
		"attendance_id", written.ID,
		"error", err)

	records := mergeRecord(prior.records, written)
	merged := employeeView{
		records: records,
		leaves:  prior.leaves,
		days:    a.reconciler.Reconcile(records, prior.leaves),
	}
	gate = NewGate(employeeID)
	gate.Refresh(a.todayView(merged))
	return a.mapGateToResponse(gate)
}

func mergeRecord(records []attendance.Attendance, written attendance.Attendance) []attendance.Attendance {
	merged := make([]attendance.Attendance, 0, len(records)+1)
	replaced := false
	for _, r := range records {
		if r.ID == written.ID {
			merged = append(merged, written)
			replaced = true
			continue
		}
		merged = append(merged, r)
	}
	if !replaced {
		merged = append(merged, written)
	}
	return merged
}

// sortForDisplay orders newest day first, then by employee.
func sortForDisplay(days []attendance.ReconciledDay) []attendance.ReconciledDay {
	sorted := slices.Clone(days)
	slices.SortStableFunc(sorted, func(x, y attendance.ReconciledDay) int {
		if c := cmp.Compare(y.Date, x.Date); c != 0 {
			return c
		}
		return cmp.Compare(x.EmployeeID, y.EmployeeID)
	})
	return sorted
}

// timePtrToString renders an instant in the reporting timezone.
func (a *AttendanceServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(a.cal.Location()).Format("2006-01-02 15:04:05")
	return &format
}

func (a *AttendanceServiceImpl) mapDayToResponse(d attendance.ReconciledDay) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           d.RecordID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Date:         d.Date.String(),
		CheckInTime:  a.timePtrToString(d.CheckIn),
		CheckOutTime: a.timePtrToString(d.CheckOut),
		WorkingHours: WorkedHours(d.Hours, d.CheckIn, d.CheckOut),
		Status:       string(d.Status),
		WorkMode:     string(d.WorkMode),
	}
}

func (a *AttendanceServiceImpl) mapDaysToListResponse(days []attendance.ReconciledDay) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(days))
	for _, d := range days {
		responses = append(responses, a.mapDayToResponse(d))
	}
	return attendance.ListAttendanceResponse{
		TotalCount:  int64(len(responses)),
		Attendances: responses,
	}
}

func (a *AttendanceServiceImpl) mapGateToResponse(gate *Gate) attendance.AttendanceStatusResponse {
	var today *attendance.AttendanceResponse
	if rec := gate.Today(); rec != nil {
		resp := a.mapDayToResponse(*rec)
		today = &resp
	}

	return attendance.AttendanceStatusResponse{
		GateState:         string(gate.State()),
		CanCheckIn:        gate.CanCheckIn(),
		CanCheckOut:       gate.CanCheckOut(),
		OnLeave:           gate.OnLeave(),
		Date:              gate.Day().String(),
		TodayAttendance:   today,
		ReportingTimezone: a.cal.Location().String(),
		Message:           gate.Message(),
	}
}

func mapWeekToResponse(w clock.WeekRange) attendance.WeekRangeResponse {
	return attendance.WeekRangeResponse{
		Start: w.Start.String(),
		End:   w.End.String(),
		Label: w.Label,
	}
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	cal *clock.Calendar,
	weeksBack int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRequestRepo,
		cal:                    cal,
		reconciler:             NewReconciler(cal),
		weeksBack:              weeksBack,
	}
}
