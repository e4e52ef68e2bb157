package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/google/uuid"
)

// AttendanceRepository keeps records in process memory. It enforces one
// record per employee and day like the SQL store does.
type AttendanceRepository struct {
	mu      sync.RWMutex
	records []attendance.Attendance
	now     func() time.Time
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{now: time.Now}
}

// Seed stores records as given. Records without an ID get one.
func (r *AttendanceRepository) Seed(records ...attendance.Attendance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		r.records = append(r.records, rec)
	}
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	return result, nil
}

// ListAll implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.records), nil
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (r *AttendanceRepository) CreateCheckIn(ctx context.Context, payload attendance.CheckInPayload) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.EmployeeID == payload.EmployeeID && rec.Date == payload.Date.String() {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
	}

	checkIn := payload.CheckIn
	now := r.now()
	rec := attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: payload.EmployeeID,
		Date:       payload.Date.String(),
		CheckIn:    &checkIn,
		Status:     payload.Status,
		WorkMode:   payload.WorkMode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.records = append(r.records, rec)
	return rec, nil
}

// PatchCheckOut implements attendance.AttendanceRepository. A record that
// already has a check-out is reported as not found.
func (r *AttendanceRepository) PatchCheckOut(ctx context.Context, id string, payload attendance.CheckOutPayload) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID != id || r.records[i].CheckOut != nil {
			continue
		}
		checkOut := payload.CheckOut
		r.records[i].CheckOut = &checkOut
		r.records[i].Hours = payload.Hours
		r.records[i].UpdatedAt = r.now()
		return r.records[i], nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}
