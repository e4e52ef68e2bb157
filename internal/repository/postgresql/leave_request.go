package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

const leaveRequestColumns = `
	id::text, employee_id, employee_name,
	to_char(from_date, 'YYYY-MM-DD'), to_char(to_date, 'YYYY-MM-DD'),
	reason, status, approved_by, approved_at, rejection_reason, cancelled_at,
	created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		lr       leave.LeaveRequest
		fromDate string
		toDate   string
		status   string
	)
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.EmployeeName,
		&fromDate, &toDate,
		&lr.Reason, &status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CancelledAt,
		&lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	lr.FromDate = clock.Day(fromDate)
	lr.ToDate = clock.Day(toDate)
	lr.Status = leave.LeaveRequestStatus(status)
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, op, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}

	return requests, nil
}

// Create implements leave.LeaveRequestRepository. The overlap check and the
// insert share one transaction, serialised per employee.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	var created leave.LeaveRequest

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, request.EmployeeID); err != nil {
			return storeError("lock employee leave", err)
		}

		var overlapping bool
		err := q.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM leave_requests
				WHERE employee_id = $1
				  AND status IN ('Pending', 'Approved')
				  AND from_date <= $3::date
				  AND to_date >= $2::date
			)
		`, request.EmployeeID, request.FromDate.String(), request.ToDate.String()).Scan(&overlapping)
		if err != nil {
			return storeError("check overlapping leave", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		query := `
			INSERT INTO leave_requests (
				employee_id, from_date, to_date, reason, status
			) VALUES (
				$1, $2::date, $3::date, $4, $5
			) RETURNING ` + leaveRequestColumns

		created, err = scanLeaveRequest(q.QueryRow(ctx, query,
			request.EmployeeID,
			request.FromDate.String(),
			request.ToDate.String(),
			request.Reason,
			string(request.Status),
		))
		if err != nil {
			return storeError("create leave request", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id::text = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, storeError("get leave request", err)
	}

	return lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY from_date DESC
	`
	return r.list(ctx, "list leave requests by employee", query, employeeID)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		ORDER BY from_date DESC, employee_id ASC
	`
	return r.list(ctx, "list leave requests", query)
}

// UpdateStatus implements leave.LeaveRequestRepository. The status guard is
// part of the UPDATE so concurrent transitions cannot both succeed.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, update leave.StatusUpdate) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	from := make([]string, 0, len(update.From))
	for _, s := range update.From {
		from = append(from, string(s))
	}

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = COALESCE($3, approved_by),
			approved_at = COALESCE($4, approved_at),
			rejection_reason = COALESCE($5, rejection_reason),
			cancelled_at = COALESCE($6, cancelled_at),
			updated_at = NOW()
		WHERE id::text = $1 AND status = ANY($7)
		RETURNING ` + leaveRequestColumns

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query,
		update.ID,
		string(update.Status),
		update.ApprovedBy,
		update.ApprovedAt,
		update.RejectionReason,
		update.CancelledAt,
		from,
	))
	if err == nil {
		return lr, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, storeError("update leave request status", err)
	}

	// Nothing matched: tell a missing request from one in the wrong state.
	if _, getErr := r.GetByID(ctx, update.ID); getErr != nil {
		return leave.LeaveRequest{}, getErr
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}
