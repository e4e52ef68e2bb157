package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// BucketWeek lays days out over the Monday-Sunday week containing
// week.Start. It always returns seven cells, Monday first. Days outside the
// week are ignored; when several records share a day the first one wins.
// A day without a record is Leave when an approved leave covers it, then
// Weekoff on weekends and Absent otherwise.
func BucketWeek(cal *clock.Calendar, week clock.WeekRange, days []attendance.ReconciledDay, leaves []leave.LeaveRequest) []attendance.TimesheetCell {
	week = clock.WeekOf(week.Start)
	overlay := newLeaveOverlay(leaves)

	byDay := make(map[clock.Day]attendance.ReconciledDay, len(days))
	for _, d := range days {
		key := d.Date
		if key == "" && d.CheckIn != nil {
			key = cal.DayKey(*d.CheckIn)
		}
		if !week.Contains(key) {
			continue
		}
		if _, taken := byDay[key]; !taken {
			byDay[key] = d
		}
	}

	cells := make([]attendance.TimesheetCell, 0, 7)
	for _, day := range week.Days() {
		rec, found := byDay[day]
		if !found {
			status := attendance.StatusAbsent
			switch {
			case overlay.covers(day):
				status = attendance.StatusLeave
			case day.IsWeekend():
				status = attendance.StatusWeekoff
			}
			cells = append(cells, attendance.TimesheetCell{Date: day, Status: status})
			continue
		}

		cells = append(cells, attendance.TimesheetCell{
			Date:     day,
			Status:   rec.Status,
			CheckIn:  rec.CheckIn,
			CheckOut: rec.CheckOut,
			WorkMode: rec.WorkMode,
			Hours:    WorkedHours(rec.Hours, rec.CheckIn, rec.CheckOut),
		})
	}
	return cells
}

// WorkedHours prefers store-provided hours, then checkOut-checkIn, then 0.
// The result is non-negative and rounded to 2 decimals.
func WorkedHours(stored *float64, checkIn, checkOut *time.Time) float64 {
	if stored != nil {
		return RoundHours(*stored)
	}
	if checkIn != nil && checkOut != nil {
		return RoundHours(checkOut.Sub(*checkIn).Hours())
	}
	return 0
}

func RoundHours(h float64) float64 {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return math.Round(h*100) / 100
}

// TotalHours sums the hours of cells.
func TotalHours(cells []attendance.TimesheetCell) float64 {
	var total float64
	for _, c := range cells {
		total += c.Hours
	}
	return math.Round(total*100) / 100
}
