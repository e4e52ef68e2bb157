package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidInterval              = errors.New("leave from_date must not be after to_date")
	ErrOverlappingLeave             = errors.New("leave overlaps an existing pending or approved request")
	ErrNotLeaveOwner                = errors.New("leave request belongs to another employee")
)
