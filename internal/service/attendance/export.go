package attendance

import (
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// ExportRows turns reconciled days into rows matching attendance.ExportHeader,
// keeping the order of days.
func ExportRows(cal *clock.Calendar, days []attendance.ReconciledDay) [][]string {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		hours := WorkedHours(d.Hours, d.CheckIn, d.CheckOut)
		rows = append(rows, []string{
			d.Date.String(),
			cal.FormatClock(d.CheckIn),
			cal.FormatClock(d.CheckOut),
			strconv.FormatFloat(hours, 'f', 2, 64),
			string(d.Status),
			string(d.WorkMode),
		})
	}
	return rows
}
