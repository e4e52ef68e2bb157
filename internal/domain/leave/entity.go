package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "Rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "Cancelled"
)

// LeaveRequest entity. FromDate and ToDate are inclusive calendar days.
type LeaveRequest struct {
	ID         string
	EmployeeID string

	FromDate clock.Day
	ToDate   clock.Day
	Reason   string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// Interval returns the request's days, or ErrInvalidInterval when either
// bound is malformed or FromDate is after ToDate.
func (l LeaveRequest) Interval() (from, to clock.Day, err error) {
	if !l.FromDate.Valid() || !l.ToDate.Valid() || l.FromDate.After(l.ToDate) {
		return "", "", ErrInvalidInterval
	}
	return l.FromDate, l.ToDate, nil
}

// StatusUpdate moves a request to Status, but only if it currently holds one
// of From.
type StatusUpdate struct {
	ID              string
	From            []LeaveRequestStatus
	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CancelledAt     *time.Time
}
