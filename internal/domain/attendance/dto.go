package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"-"`
	WorkMode   string `json:"work_mode"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.WorkMode) {
		r.WorkMode = string(WorkModeOffice) // Default work mode
	}
	validModes := []string{string(WorkModeOffice), string(WorkModeWFH)}
	if !validator.IsInSlice(r.WorkMode, validModes) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_mode",
			Message: "work_mode must be one of: Office, WFH",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// ATTENDANCE VIEW DTOs
// ========================================

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	WorkingHours float64 `json:"working_hours"`
	Status       string  `json:"status"`
	WorkMode     string  `json:"work_mode,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type AttendanceStatusResponse struct {
	GateState         string              `json:"gate_state"`
	CanCheckIn        bool                `json:"can_check_in"`
	CanCheckOut       bool                `json:"can_check_out"`
	OnLeave           bool                `json:"on_leave"`
	Date              string              `json:"date"`
	TodayAttendance   *AttendanceResponse `json:"today_attendance,omitempty"`
	ReportingTimezone string              `json:"reporting_timezone"`
	Message           string              `json:"message"`
}

// ========================================
// TIMESHEET DTOs
// ========================================

type TimesheetFilter struct {
	EmployeeID string  `json:"employee_id"`
	WeekStart  *string `json:"week_start,omitempty"` // YYYY-MM-DD, any day of the wanted week
}

func (f *TimesheetFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.WeekStart != nil && *f.WeekStart != "" {
		if _, valid := validator.IsValidDate(*f.WeekStart); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "week_start",
				Message: "week_start must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeekRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type TimesheetCellResponse struct {
	Date         string  `json:"date"`
	Weekday      string  `json:"weekday"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	WorkMode     string  `json:"work_mode,omitempty"`
	Hours        float64 `json:"hours"`
}

type TimesheetResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Week       WeekRangeResponse       `json:"week"`
	Days       []TimesheetCellResponse `json:"days"`
	TotalHours float64                 `json:"total_hours"`
}

type WeeksFilter struct {
	N int `json:"n"`
}

func (f *WeeksFilter) Validate(defaultN int) error {
	var errs validator.ValidationErrors

	if f.N < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "n",
			Message: "n must be a positive number",
		})
	}
	if f.N == 0 {
		f.N = defaultN
	}
	if f.N > 52 {
		errs = append(errs, validator.ValidationError{
			Field:   "n",
			Message: "n must not exceed 52",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// EXPORT DTOs
// ========================================

// ExportHeader is the fixed column order of attendance exports.
var ExportHeader = []string{"Date", "Check In", "Check Out", "Hours", "Status", "Work Mode"}

type ExportResult struct {
	Header []string
	Rows   [][]string
}
