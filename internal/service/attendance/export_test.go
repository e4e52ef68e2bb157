package attendance

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRows(t *testing.T) {
	cal, _ := newTestCalendar(t, "Asia/Jakarta", utc(2024, 6, 12, 2, 0))

	rows := ExportRows(cal, []attendance.ReconciledDay{
		{
			Date: "2024-06-11", Status: attendance.StatusPresent, WorkMode: attendance.WorkModeWFH,
			CheckIn: timePtr(utc(2024, 6, 11, 2, 0)), CheckOut: timePtr(utc(2024, 6, 11, 10, 30)),
		},
		{Date: "2024-06-10", Status: attendance.StatusLeave},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-06-11", "09:00", "17:30", "8.50", "Present", "WFH"}, rows[0])
	assert.Equal(t, []string{"2024-06-10", "", "", "0.00", "Leave", ""}, rows[1])

	for _, row := range rows {
		assert.Len(t, row, len(attendance.ExportHeader))
	}
}
