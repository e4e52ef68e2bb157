package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{validator.ValidationErrors{{Field: "work_mode", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("wrapped: %w", attendance.ErrOnLeave), http.StatusConflict, "CONFLICT"},
		{attendance.ErrDuplicateRecord, http.StatusConflict, "CONFLICT"},
		{attendance.ErrAttendanceNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: dial tcp", attendance.ErrStoreUnavailable), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{leave.ErrLeaveRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{leave.ErrLeaveRequestAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{leave.ErrInvalidInterval, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{leave.ErrNotLeaveOwner, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, c.err)

		assert.Equal(t, c.status, rec.Code, "error %v", c.err)

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, c.code, body.Error.Code, "error %v", c.err)
	}
}

func TestHandleError_GateMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, attendance.ErrNotCheckedIn)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "You have not checked in yet", body.Error.Message)
}
