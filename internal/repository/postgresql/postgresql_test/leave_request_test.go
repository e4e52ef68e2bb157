package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveRequestRepository_Lifecycle(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewLeaveRequestRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: "emp-001",
		FromDate:   clock.Day("2024-06-10"),
		ToDate:     clock.Day("2024-06-12"),
		Reason:     "family event",
		Status:     leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, clock.Day("2024-06-10"), created.FromDate)

	_, err = repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: "emp-001",
		FromDate:   "2024-06-12",
		ToDate:     "2024-06-13",
		Status:     leave.LeaveRequestStatusPending,
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	approvedBy := "mgr-001"
	approvedAt := time.Now().UTC()
	approved, err := repo.UpdateStatus(ctx, leave.StatusUpdate{
		ID:         created.ID,
		From:       []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending},
		Status:     leave.LeaveRequestStatusApproved,
		ApprovedBy: &approvedBy,
		ApprovedAt: &approvedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "mgr-001", *approved.ApprovedBy)

	_, err = repo.UpdateStatus(ctx, leave.StatusUpdate{
		ID:     created.ID,
		From:   []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending},
		Status: leave.LeaveRequestStatusRejected,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	mine, err := repo.ListByEmployee(ctx, "emp-001")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
