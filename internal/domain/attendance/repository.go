package attendance

import (
	"context"
)

// AttendanceRepository is the record store port for attendance.
// Failures to reach the store are reported wrapped in ErrStoreUnavailable.
type AttendanceRepository interface {
	// ListByEmployee returns every record of one employee
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	// ListAll returns every record of every employee (privileged)
	ListAll(ctx context.Context) ([]Attendance, error)

	// CreateCheckIn writes a new record. The store may reject a second record
	// for the same employee and day with ErrDuplicateRecord.
	CreateCheckIn(ctx context.Context, payload CheckInPayload) (Attendance, error)

	// PatchCheckOut sets the check-out of an existing record
	PatchCheckOut(ctx context.Context, id string, payload CheckOutPayload) (Attendance, error)
}
