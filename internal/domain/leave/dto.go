package leave

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"

type ApplyLeaveRequest struct {
	EmployeeID string `json:"-"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	Reason     string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.FromDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidDate(r.ToDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveLeaveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"-"`
}

type RejectLeaveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"-"`
	Reason     string `json:"reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelLeaveRequest struct {
	ID         string `json:"-"`
	EmployeeID string `json:"-"`
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	FromDate        string  `json:"from_date"`
	ToDate          string  `json:"to_date"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Requests   []LeaveRequestResponse `json:"requests"`
}
