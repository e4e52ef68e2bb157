package http

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyLeave(t *testing.T, s *testServer, from, to string) leave.LeaveRequestResponse {
	t.Helper()
	rr := s.do(t, &testEmployee, http.MethodPost, "/api/v1/leave/requests", map[string]string{
		"from_date": from,
		"to_date":   to,
		"reason":    "family event",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	_, created := decode[leave.LeaveRequestResponse](t, rr)
	return created
}

func TestLeaveHandler_ApproveBlocksAttendance(t *testing.T) {
	s := newTestServer(t, nil)

	created := applyLeave(t, s, "2024-06-10", "2024-06-11")
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "emp-001", created.EmployeeID)

	// Pending leave does not close the gate.
	rr := s.do(t, &testEmployee, http.MethodGet, "/api/v1/attendance/my/status", nil)
	_, status := decode[attendance.AttendanceStatusResponse](t, rr)
	assert.False(t, status.OnLeave)

	rr = s.do(t, &testEmployee, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/approve", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, &testManager, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	_, approved := decode[leave.LeaveRequestResponse](t, rr)
	assert.Equal(t, "Approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "user-mgr", *approved.ApprovedBy)

	rr = s.do(t, &testEmployee, http.MethodGet, "/api/v1/attendance/my/status", nil)
	_, status = decode[attendance.AttendanceStatusResponse](t, rr)
	assert.True(t, status.OnLeave)
	assert.Equal(t, "on_leave", status.GateState)

	rr = s.do(t, &testEmployee, http.MethodPost, "/api/v1/attendance/check-in", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, &testManager, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/approve", nil)
	assert.Equal(t, http.StatusConflict, rr.Code, "a request is processed once")
}

func TestLeaveHandler_Overlap(t *testing.T) {
	s := newTestServer(t, nil)
	applyLeave(t, s, "2024-06-10", "2024-06-12")

	rr := s.do(t, &testEmployee, http.MethodPost, "/api/v1/leave/requests", map[string]string{
		"from_date": "2024-06-12",
		"to_date":   "2024-06-14",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, &testEmployee, http.MethodPost, "/api/v1/leave/requests", map[string]string{
		"from_date": "2024-06-20",
		"to_date":   "2024-06-18",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLeaveHandler_RejectRequiresReason(t *testing.T) {
	s := newTestServer(t, nil)
	created := applyLeave(t, s, "2024-06-17", "2024-06-17")

	rr := s.do(t, &testManager, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/reject", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = s.do(t, &testManager, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/reject", map[string]string{"reason": "peak week"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	_, rejected := decode[leave.LeaveRequestResponse](t, rr)
	assert.Equal(t, "Rejected", rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "peak week", *rejected.RejectionReason)
}

func TestLeaveHandler_CancelOwnOnly(t *testing.T) {
	s := newTestServer(t, nil)
	created := applyLeave(t, s, "2024-06-17", "2024-06-18")

	rr := s.do(t, &testColleague, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/cancel", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, &testEmployee, http.MethodPost, "/api/v1/leave/requests/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	_, cancelled := decode[leave.LeaveRequestResponse](t, rr)
	assert.Equal(t, "Cancelled", cancelled.Status)

	rr = s.do(t, &testEmployee, http.MethodPost, "/api/v1/leave/requests/missing/cancel", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaveHandler_Lists(t *testing.T) {
	s := newTestServer(t, nil)
	applyLeave(t, s, "2024-06-17", "2024-06-18")
	applyLeave(t, s, "2024-07-01", "2024-07-02")

	rr := s.do(t, &testEmployee, http.MethodGet, "/api/v1/leave/requests/my", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	_, mine := decode[leave.ListLeaveRequestResponse](t, rr)
	assert.EqualValues(t, 2, mine.TotalCount)
	require.Len(t, mine.Requests, 2)
	assert.Equal(t, "2024-07-01", mine.Requests[0].FromDate)

	rr = s.do(t, &testColleague, http.MethodGet, "/api/v1/leave/requests/my", nil)
	_, theirs := decode[leave.ListLeaveRequestResponse](t, rr)
	assert.Empty(t, theirs.Requests)

	rr = s.do(t, &testEmployee, http.MethodGet, "/api/v1/leave/requests", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, &testManager, http.MethodGet, "/api/v1/leave/requests", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	_, all := decode[leave.ListLeaveRequestResponse](t, rr)
	assert.EqualValues(t, 2, all.TotalCount)
}
