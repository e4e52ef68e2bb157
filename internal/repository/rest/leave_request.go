package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
)

type leaveRequestRepository struct {
	client *Client
}

func (r *leaveRequestRepository) list(ctx context.Context, path string) ([]leave.LeaveRequest, error) {
	var docs []leaveDoc
	if err := r.client.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}

	requests := make([]leave.LeaveRequest, 0, len(docs))
	for _, d := range docs {
		requests = append(requests, d.toEntity())
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	body := leaveDoc{
		EmpID:    request.EmployeeID,
		FromDate: request.FromDate.String(),
		ToDate:   request.ToDate.String(),
		Reason:   request.Reason,
		Status:   string(request.Status),
	}

	var doc leaveDoc
	if err := r.client.do(ctx, http.MethodPost, "/leaves", body, &doc); err != nil {
		if statusOf(err) == http.StatusConflict {
			return leave.LeaveRequest{}, leave.ErrOverlappingLeave
		}
		return leave.LeaveRequest{}, err
	}
	return doc.toEntity(), nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var doc leaveDoc
	if err := r.client.do(ctx, http.MethodGet, "/leaves/"+url.PathEscape(id), nil, &doc); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return doc.toEntity(), nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.list(ctx, "/leaves?"+url.Values{"emp_id": {employeeID}}.Encode())
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.list(ctx, "/leaves")
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, update leave.StatusUpdate) (leave.LeaveRequest, error) {
	expected := make([]string, 0, len(update.From))
	for _, s := range update.From {
		expected = append(expected, string(s))
	}
	body := statusPatchDoc{
		Status:          string(update.Status),
		ExpectedStatus:  expected,
		ApprovedBy:      update.ApprovedBy,
		ApprovedAt:      update.ApprovedAt,
		RejectionReason: update.RejectionReason,
		CancelledAt:     update.CancelledAt,
	}

	var doc leaveDoc
	if err := r.client.do(ctx, http.MethodPatch, "/leaves/"+url.PathEscape(update.ID), body, &doc); err != nil {
		switch statusOf(err) {
		case http.StatusNotFound:
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		case http.StatusConflict:
			return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.LeaveRequest{}, err
	}
	return doc.toEntity(), nil
}

func NewLeaveRequestRepository(client *Client) leave.LeaveRequestRepository {
	return &leaveRequestRepository{client: client}
}
