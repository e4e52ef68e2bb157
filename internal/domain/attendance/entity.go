package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"

	// StatusWeekoff only appears on timesheet cells, never on stored records.
	StatusWeekoff Status = "Weekoff"
)

type WorkMode string

const (
	WorkModeOffice WorkMode = "Office"
	WorkModeWFH    WorkMode = "WFH"
)

// Attendance is a raw record as held by the record store.
type Attendance struct {
	ID         string
	EmployeeID string

	// Date is the stored calendar day. It is kept raw and only reduced to a
	// clock.Day by the reconciler.
	Date string

	// Absolute instants, never stored pre-converted.
	CheckIn  *time.Time
	CheckOut *time.Time

	// Hours is set when the store computed worked hours itself.
	Hours *float64

	Status   Status
	WorkMode WorkMode

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// ReconciledDay is the read-time view of one attendance record after the
// leave overlay has been applied. It is never persisted.
type ReconciledDay struct {
	RecordID     string
	EmployeeID   string
	EmployeeName *string
	Date         clock.Day
	Status       Status
	CheckIn      *time.Time
	CheckOut     *time.Time
	Hours        *float64
	WorkMode     WorkMode
}

// TimesheetCell is one day of a weekly timesheet.
type TimesheetCell struct {
	Date     clock.Day
	Status   Status
	CheckIn  *time.Time
	CheckOut *time.Time
	WorkMode WorkMode
	Hours    float64
}

// CheckInPayload is what the store receives on check-in.
type CheckInPayload struct {
	EmployeeID string
	Date       clock.Day
	CheckIn    time.Time
	Status     Status
	WorkMode   WorkMode
}

// CheckOutPayload is what the store receives on check-out.
type CheckOutPayload struct {
	CheckOut time.Time
	Hours    *float64
}
