package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetTimesheet(w http.ResponseWriter, r *http.Request)
	ListWeeks(w http.ResponseWriter, r *http.Request)
	ExportMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	principal, err := employeeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// The body is optional; an empty one means the default work mode.
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Set employee_id from JWT (override any value from request for security)
	req.EmployeeID = principal.EmployeeID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	principal, err := employeeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), attendance.CheckOutRequest{
		EmployeeID: principal.EmployeeID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := employeeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.attendanceService.GetStatus(r.Context(), principal.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	principal, err := employeeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), principal.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.TotalCount})
}

// GetTimesheet implements AttendanceHandler. Managers may read another
// employee's week through ?employee_id=.
func (h *attendanceHandlerImpl) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter attendance.TimesheetFilter
	filter.EmployeeID = principal.EmployeeID

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" && employeeID != principal.EmployeeID {
		if !principal.IsManager() {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}
		filter.EmployeeID = employeeID
	}
	if filter.EmployeeID == "" {
		response.HandleError(w, user.ErrEmployeeProfileRequired)
		return
	}

	if weekStart := r.URL.Query().Get("week_start"); weekStart != "" {
		filter.WeekStart = &weekStart
	}

	sheet, err := h.attendanceService.GetTimesheet(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sheet)
}

// ListWeeks implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListWeeks(w http.ResponseWriter, r *http.Request) {
	var filter attendance.WeeksFilter
	if n := r.URL.Query().Get("n"); n != "" {
		parsed, err := strconv.Atoi(n)
		if err != nil {
			response.BadRequest(w, "Invalid n parameter", map[string]string{"n": "n must be a number"})
			return
		}
		filter.N = parsed
	}

	weeks, err := h.attendanceService.ListWeeks(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, weeks)
}

// ExportMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportMyAttendance(w http.ResponseWriter, r *http.Request) {
	principal, err := employeeFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ExportMyAttendance(r.Context(), principal.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "attendance-"+principal.EmployeeID+".csv"))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(result.Header); err != nil {
		slog.Error("Failed to write export header", "error", err)
		return
	}
	if err := cw.WriteAll(result.Rows); err != nil {
		slog.Error("Failed to write export rows", "error", err)
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.TotalCount})
}
