package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrEmployeeProfileRequired):
		Forbidden(w, "Employee ID not found in token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrGateViolation):
		Conflict(w, gateMessage(err))
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance for today already exists")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave overlaps an existing request")
	case errors.Is(err, leave.ErrInvalidInterval):
		ValidationError(w, map[string]string{"to_date": "to_date must not be before from_date"})
	case errors.Is(err, leave.ErrNotLeaveOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// Record store errors
	case errors.Is(err, attendance.ErrStoreUnavailable):
		slog.Error("Record store unavailable", "error", err)
		ServiceUnavailable(w, "Attendance records are temporarily unavailable, please try again")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

// gateMessage picks the user-facing text of a gate violation.
func gateMessage(err error) string {
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		return "You have already checked in today"
	case errors.Is(err, attendance.ErrNotCheckedIn):
		return "You have not checked in yet"
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		return "You have already checked out today"
	case errors.Is(err, attendance.ErrOnLeave):
		return "You are on approved leave today"
	default:
		return "Attendance action not permitted"
	}
}
