package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

type attendanceRepository struct {
	client *Client
}

func (r *attendanceRepository) list(ctx context.Context, path string) ([]attendance.Attendance, error) {
	var docs []attendanceDoc
	if err := r.client.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}

	records := make([]attendance.Attendance, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.toEntity())
	}
	return records, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return r.list(ctx, "/attendance?"+url.Values{"emp_id": {employeeID}}.Encode())
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return r.list(ctx, "/attendance")
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateCheckIn(ctx context.Context, payload attendance.CheckInPayload) (attendance.Attendance, error) {
	body := checkInDoc{
		EmpID:    payload.EmployeeID,
		Date:     payload.Date.String(),
		CheckIn:  payload.CheckIn.UTC(),
		Status:   string(payload.Status),
		WorkMode: string(payload.WorkMode),
	}

	var doc attendanceDoc
	if err := r.client.do(ctx, http.MethodPost, "/attendance", body, &doc); err != nil {
		if statusOf(err) == http.StatusConflict {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, err
	}
	return doc.toEntity(), nil
}

// PatchCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) PatchCheckOut(ctx context.Context, id string, payload attendance.CheckOutPayload) (attendance.Attendance, error) {
	body := checkOutDoc{
		CheckOut: payload.CheckOut.UTC(),
		Hours:    payload.Hours,
	}

	var doc attendanceDoc
	if err := r.client.do(ctx, http.MethodPatch, "/attendance/"+url.PathEscape(id), body, &doc); err != nil {
		switch statusOf(err) {
		case http.StatusNotFound, http.StatusConflict:
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return doc.toEntity(), nil
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: client}
}
