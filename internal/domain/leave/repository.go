package leave

import (
	"context"
)

// LeaveRequestRepository is the record store port for leave requests.
// Store failures are reported wrapped in attendance.ErrStoreUnavailable.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// UpdateStatus applies update atomically; it returns
	// ErrLeaveRequestAlreadyProcessed when the current status is not in update.From.
	UpdateStatus(ctx context.Context, update StatusUpdate) (LeaveRequest, error)
}
