package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for shift templates.
// All methods include organizationID to prevent cross-organization access.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string, organizationID string) (Shift, error)
	GetByIDs(ctx context.Context, ids []string, organizationID string) (map[string]Shift, error)
	List(ctx context.Context, organizationID string, filter ShiftFilter) ([]Shift, int64, error)
	Update(ctx context.Context, s Shift) error
	SetStatus(ctx context.Context, id string, organizationID string, status ShiftStatus) error

	// ListActiveForComputation returns the active shifts of an organization
	// whose computation hour is at or before hour.
	ListActiveForComputation(ctx context.Context, organizationID string, hour int) ([]Shift, error)
}

// ScheduleLogRepository defines data access for the per-employee interval
// store. Readers only ever see active rows; superseding a log flips its status
// in the same transaction that inserts the replacements.
type ScheduleLogRepository interface {
	Create(ctx context.Context, log ShiftScheduleLog) (ShiftScheduleLog, error)
	Deactivate(ctx context.Context, id string) error

	// GetActiveCovering returns the active log whose range covers date, if any.
	GetActiveCovering(ctx context.Context, employeeID string, date time.Time) (ShiftScheduleLog, bool, error)

	// GetActiveOverlapping returns the employee's active logs intersecting
	// [start, end], ordered by start date. An unbounded end matches every log
	// from start onward.
	GetActiveOverlapping(ctx context.Context, employeeID string, start time.Time, end DateBound) ([]ShiftScheduleLog, error)

	// GetActiveByShiftFrom returns active logs of any employee that use
	// shiftID and still reach date (current or future coverage).
	GetActiveByShiftFrom(ctx context.Context, shiftID string, organizationID string, date time.Time) ([]ShiftScheduleLog, error)

	// ListActiveCoveringDate returns every active log of the organization
	// whose range covers date and whose shift is shiftID.
	ListActiveCoveringDate(ctx context.Context, organizationID string, shiftID string, date time.Time) ([]ShiftScheduleLog, error)

	// Timeline returns the employee's active logs in start-date order.
	Timeline(ctx context.Context, employeeID string, organizationID string, page, limit int) ([]ShiftScheduleLog, int64, error)
}

type ShiftFilter struct {
	Status string
	Page   int
	Limit  int
}
