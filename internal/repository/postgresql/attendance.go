package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id::text, employee_id, employee_name, to_char(date, 'YYYY-MM-DD'),
	check_in, check_out, hours, status, work_mode,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att      attendance.Attendance
		status   string
		workMode string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.EmployeeName, &att.Date,
		&att.CheckIn, &att.CheckOut, &att.Hours, &status, &workMode,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.Status(status)
	att.WorkMode = attendance.WorkMode(workMode)
	return att, nil
}

func (a *attendanceRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}

	return records, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		ORDER BY date DESC, created_at ASC
	`
	return a.list(ctx, "list attendance by employee", query, employeeID)
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		ORDER BY date DESC, employee_id ASC, created_at ASC
	`
	return a.list(ctx, "list attendance", query)
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateCheckIn(ctx context.Context, payload attendance.CheckInPayload) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, status, work_mode
		) VALUES (
			$1, $2::date, $3, $4, $5
		) RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query,
		payload.EmployeeID,
		payload.Date.String(),
		payload.CheckIn,
		string(payload.Status),
		string(payload.WorkMode),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, storeError("create attendance", err)
	}

	return att, nil
}

// PatchCheckOut implements attendance.AttendanceRepository. Only an open
// record can be patched.
func (a *attendanceRepository) PatchCheckOut(ctx context.Context, id string, payload attendance.CheckOutPayload) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $2, hours = $3, updated_at = NOW()
		WHERE id::text = $1 AND check_out IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, payload.CheckOut, payload.Hours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, storeError("patch attendance check-out", err)
	}

	return att, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
