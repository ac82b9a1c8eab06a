package shift

import (
	"context"
	"time"
)

// TimelineService owns every mutation of the shift timeline. All writes keep
// the non-overlap and coverage invariants: active logs per employee are
// pairwise disjoint and gap-free from the first assignment onward.
type TimelineService interface {
	// AssignShift overlays [startDate, endDate] onto the employee's timeline,
	// splitting intersected logs into before/during/after segments. Past start
	// dates are clamped to today; history is never rewritten.
	AssignShift(ctx context.Context, req AssignShiftRequest) ([]ShiftScheduleLog, error)

	// PriorityAssign re-resolves the employee's shift from the organization's
	// applicability priority order and assigns it from today if it differs
	// from the currently effective shift.
	PriorityAssign(ctx context.Context, employeeID string, organizationID string, now time.Time) ([]ShiftScheduleLog, error)

	// DeactivateShift replaces the shift on every current or future log with
	// the alternative, then flips the template inactive. The template flip is
	// last so a partial failure leaves the shift visibly active and retryable.
	DeactivateShift(ctx context.Context, shiftID string, alternativeShiftID string, organizationID string, now time.Time) error
}

// ShiftService covers template management.
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string, organizationID string) (ShiftResponse, error)
	ListShifts(ctx context.Context, organizationID string, filter ShiftFilter) (ListShiftResponse, error)

	// UpdateShift rejects edits while the shift's latest computation run is
	// failed or still in flight.
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	GetTimeline(ctx context.Context, employeeID string, organizationID string, page, limit int) (TimelineResponse, error)
}
