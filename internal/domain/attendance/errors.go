package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// ErrGateViolation is the parent of every rejected check-in/check-out.
	// These are raised before the record store is contacted.
	ErrGateViolation     = errors.New("attendance action not permitted")
	ErrAlreadyCheckedIn  = fmt.Errorf("%w: you have already checked in today", ErrGateViolation)
	ErrNotCheckedIn      = fmt.Errorf("%w: you have not checked in yet", ErrGateViolation)
	ErrAlreadyCheckedOut = fmt.Errorf("%w: you have already checked out", ErrGateViolation)
	ErrOnLeave           = fmt.Errorf("%w: you are on approved leave today", ErrGateViolation)

	// Record store errors
	ErrStoreUnavailable   = errors.New("record store unavailable")
	ErrDuplicateRecord    = errors.New("attendance record already exists for this day")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
