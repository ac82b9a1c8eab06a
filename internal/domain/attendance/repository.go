package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for derived attendance rows.
type AttendanceRepository interface {
	// GetOrCreate returns the row keyed on (employee, date, organization),
	// inserting a fresh one if absent. The bool reports whether the row
	// already existed.
	GetOrCreate(ctx context.Context, a Attendance) (Attendance, bool, error)

	Update(ctx context.Context, a Attendance) error
	GetByID(ctx context.Context, id string, organizationID string) (Attendance, error)
	List(ctx context.Context, filter Filter, organizationID string) ([]Attendance, int64, error)
}

// HistoryRepository is the computation history ledger.
type HistoryRepository interface {
	Create(ctx context.Context, h ComputationHistory) (ComputationHistory, error)
	Finalize(ctx context.Context, id string, status RunStatus, employeeCount int, endedAt time.Time) error

	// GetLatest returns the most recent run for the shift, if any. It backs
	// both the engine's same-day guard and the shift edit lock.
	GetLatest(ctx context.Context, shiftID string, organizationID string) (ComputationHistory, bool, error)
}

type Filter struct {
	EmployeeID string
	ShiftID    string
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     string
	Page       int
	Limit      int
}
