package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/google/uuid"
)

type LeaveRequestRepository struct {
	mu       sync.RWMutex
	requests []leave.LeaveRequest
	now      func() time.Time
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{now: time.Now}
}

// Seed stores requests as given. Requests without an ID get one.
func (r *LeaveRequestRepository) Seed(requests ...leave.LeaveRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range requests {
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		r.requests = append(r.requests, req)
	}
}

// Create implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if overlapsActive(r.requests, request) {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	now := r.now()
	request.ID = uuid.NewString()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.requests = append(r.requests, request)
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]leave.LeaveRequest, 0)
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			result = append(result, req)
		}
	}
	return result, nil
}

// ListAll implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.requests), nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) UpdateStatus(ctx context.Context, update leave.StatusUpdate) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.requests {
		req := &r.requests[i]
		if req.ID != update.ID {
			continue
		}
		if !slices.Contains(update.From, req.Status) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		req.Status = update.Status
		if update.ApprovedBy != nil {
			req.ApprovedBy = update.ApprovedBy
		}
		if update.ApprovedAt != nil {
			req.ApprovedAt = update.ApprovedAt
		}
		if update.RejectionReason != nil {
			req.RejectionReason = update.RejectionReason
		}
		if update.CancelledAt != nil {
			req.CancelledAt = update.CancelledAt
		}
		req.UpdatedAt = r.now()
		return *req, nil
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

// overlapsActive reports whether request intersects a pending or approved
// request of the same employee.
func overlapsActive(existing []leave.LeaveRequest, request leave.LeaveRequest) bool {
	for _, l := range existing {
		if l.EmployeeID != request.EmployeeID {
			continue
		}
		if l.Status != leave.LeaveRequestStatusPending && l.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if !request.FromDate.After(l.ToDate) && !request.ToDate.Before(l.FromDate) {
			return true
		}
	}
	return false
}
