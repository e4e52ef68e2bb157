package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	clock clock.Clock
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		FromDate:   clock.Day(req.FromDate),
		ToDate:     clock.Day(req.ToDate),
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	}

	from, to, err := request.Interval()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	existing, err := s.LeaveRequestRepository.ListByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	if hasOverlap(existing, from, to) {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request submitted",
		"leave_id", created.ID,
		"employee_id", created.EmployeeID,
		"from_date", created.FromDate,
		"to_date", created.ToDate)

	return mapLeaveRequestToResponse(created), nil
}

// Approve implements leave.LeaveService. Only pending requests can be approved.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveRequestResponse, error) {
	now := s.clock.Now()
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, leave.StatusUpdate{
		ID:         req.ID,
		From:       []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending},
		Status:     leave.LeaveRequestStatusApproved,
		ApprovedBy: &req.ApproverID,
		ApprovedAt: &now,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to approve leave request: %w", err)
	}

	slog.Info("Leave request approved", "leave_id", updated.ID, "approved_by", req.ApproverID)
	return mapLeaveRequestToResponse(updated), nil
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := s.clock.Now()
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, leave.StatusUpdate{
		ID:              req.ID,
		From:            []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending},
		Status:          leave.LeaveRequestStatusRejected,
		ApprovedBy:      &req.ApproverID,
		ApprovedAt:      &now,
		RejectionReason: &req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to reject leave request: %w", err)
	}

	slog.Info("Leave request rejected", "leave_id", updated.ID, "rejected_by", req.ApproverID)
	return mapLeaveRequestToResponse(updated), nil
}

// Cancel implements leave.LeaveService. The owner may cancel a pending or an
// approved request; cancelling an approved one lifts its leave overlay.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, req leave.CancelLeaveRequest) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}
	if request.EmployeeID != req.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrNotLeaveOwner
	}

	now := s.clock.Now()
	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, leave.StatusUpdate{
		ID:          req.ID,
		From:        []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved},
		Status:      leave.LeaveRequestStatusCancelled,
		CancelledAt: &now,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	slog.Info("Leave request cancelled", "leave_id", updated.ID, "employee_id", req.EmployeeID)
	return mapLeaveRequestToResponse(updated), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string) (leave.ListLeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return mapLeaveRequestsToListResponse(requests), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context) (leave.ListLeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return mapLeaveRequestsToListResponse(requests), nil
}

// hasOverlap reports whether [from, to] intersects a pending or approved
// request in existing.
func hasOverlap(existing []leave.LeaveRequest, from, to clock.Day) bool {
	for _, l := range existing {
		if l.Status != leave.LeaveRequestStatusPending && l.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		lf, lt, err := l.Interval()
		if errors.Is(err, leave.ErrInvalidInterval) {
			continue
		}
		if !from.After(lt) && !to.Before(lf) {
			return true
		}
	}
	return false
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func mapLeaveRequestToResponse(l leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		EmployeeName:    l.EmployeeName,
		FromDate:        l.FromDate.String(),
		ToDate:          l.ToDate.String(),
		Reason:          l.Reason,
		Status:          string(l.Status),
		ApprovedBy:      l.ApprovedBy,
		ApprovedAt:      timePtrToString(l.ApprovedAt),
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
}

// mapLeaveRequestsToListResponse orders requests newest interval first.
func mapLeaveRequestsToListResponse(requests []leave.LeaveRequest) leave.ListLeaveRequestResponse {
	sorted := slices.Clone(requests)
	slices.SortStableFunc(sorted, func(a, b leave.LeaveRequest) int {
		switch {
		case a.FromDate > b.FromDate:
			return -1
		case a.FromDate < b.FromDate:
			return 1
		}
		return 0
	})

	responses := make([]leave.LeaveRequestResponse, 0, len(sorted))
	for _, l := range sorted {
		responses = append(responses, mapLeaveRequestToResponse(l))
	}
	return leave.ListLeaveRequestResponse{
		TotalCount: int64(len(responses)),
		Requests:   responses,
	}
}

func NewLeaveService(leaveRequestRepo leave.LeaveRequestRepository, c clock.Clock) leave.LeaveService {
	if c == nil {
		c = clock.SystemClock()
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		clock:                  c,
	}
}
