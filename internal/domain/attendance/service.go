package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records today's check-in when the gate allows it
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceStatusResponse, error)

	// CheckOut closes today's record when the gate allows it
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceStatusResponse, error)

	// GetStatus computes the gate for today from a fresh view
	GetStatus(ctx context.Context, employeeID string) (AttendanceStatusResponse, error)

	// GetMyAttendance returns one employee's reconciled records, newest first
	GetMyAttendance(ctx context.Context, employeeID string) (ListAttendanceResponse, error)

	// ListAttendance returns reconciled records of all employees (manager/owner)
	ListAttendance(ctx context.Context) (ListAttendanceResponse, error)

	// GetTimesheet buckets one employee's week into seven cells
	GetTimesheet(ctx context.Context, filter TimesheetFilter) (TimesheetResponse, error)

	// ListWeeks returns the selectable weeks, most recent first
	ListWeeks(ctx context.Context, filter WeeksFilter) ([]WeekRangeResponse, error)

	// ExportMyAttendance returns export rows in display order
	ExportMyAttendance(ctx context.Context, employeeID string) (ExportResult, error)
}
