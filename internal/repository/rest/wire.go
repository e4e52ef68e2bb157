package rest

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// attendanceDoc is an attendance record as the remote store sends it.
type attendanceDoc struct {
	ID        string     `json:"id"`
	EmpID     string     `json:"empId"`
	EmpName   *string    `json:"empName,omitempty"`
	Date      string     `json:"date"`
	CheckIn   *time.Time `json:"checkIn,omitempty"`
	CheckOut  *time.Time `json:"checkOut,omitempty"`
	Hours     *float64   `json:"hours,omitempty"`
	Status    string     `json:"status"`
	WorkMode  string     `json:"workMode,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	UpdatedAt time.Time  `json:"updatedAt,omitzero"`
}

func (d attendanceDoc) toEntity() attendance.Attendance {
	return attendance.Attendance{
		ID:           d.ID,
		EmployeeID:   d.EmpID,
		EmployeeName: d.EmpName,
		Date:         d.Date,
		CheckIn:      d.CheckIn,
		CheckOut:     d.CheckOut,
		Hours:        d.Hours,
		Status:       attendance.Status(d.Status),
		WorkMode:     attendance.WorkMode(d.WorkMode),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type checkInDoc struct {
	EmpID    string    `json:"empId"`
	Date     string    `json:"date"`
	CheckIn  time.Time `json:"checkIn"`
	Status   string    `json:"status"`
	WorkMode string    `json:"workMode"`
}

type checkOutDoc struct {
	CheckOut time.Time `json:"checkOut"`
	Hours    *float64  `json:"hours,omitempty"`
}

type leaveDoc struct {
	ID              string     `json:"id"`
	EmpID           string     `json:"empId"`
	EmpName         *string    `json:"empName,omitempty"`
	FromDate        string     `json:"fromDate"`
	ToDate          string     `json:"toDate"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt,omitzero"`
	UpdatedAt       time.Time  `json:"updatedAt,omitzero"`
}

func (d leaveDoc) toEntity() leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:              d.ID,
		EmployeeID:      d.EmpID,
		EmployeeName:    d.EmpName,
		FromDate:        clock.Day(d.FromDate),
		ToDate:          clock.Day(d.ToDate),
		Reason:          d.Reason,
		Status:          leave.LeaveRequestStatus(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectionReason: d.RejectionReason,
		CancelledAt:     d.CancelledAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// statusPatchDoc asks the store to move a request to Status only if it is
// currently in one of ExpectedStatus; the store answers 409 otherwise.
type statusPatchDoc struct {
	Status          string     `json:"status"`
	ExpectedStatus  []string   `json:"expectedStatus"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}
