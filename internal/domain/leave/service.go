package leave

import "context"

// LeaveService covers the leave lifecycle: apply, approve, reject, cancel.
type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, req ApproveLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, req CancelLeaveRequest) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string) (ListLeaveRequestResponse, error)
	ListAll(ctx context.Context) (ListLeaveRequestResponse, error)
}
