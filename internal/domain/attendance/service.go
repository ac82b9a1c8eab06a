package attendance

import (
	"context"
	"time"
)

// ComputationService is the batch engine exposed to the cron scheduler and
// the manual run endpoint.
type ComputationService interface {
	// RunComputation computes attendance for every employee covered by the
	// shift's schedule logs on the attendance date derived from now. A
	// completed or still-running same-day run yields ErrRunAlreadyDone;
	// failed and crashed runs stay retryable.
	RunComputation(ctx context.Context, organizationID string, shiftID string, now time.Time) (RunResult, error)

	// RunDueComputations runs every active shift of the organization whose
	// computation hour has arrived. Per-shift failures are logged and do not
	// abort the sweep.
	RunDueComputations(ctx context.Context, organizationID string, now time.Time) error

	GetAttendance(ctx context.Context, id string, organizationID string) (Response, error)
	ListAttendance(ctx context.Context, filter Filter, organizationID string) (ListResponse, error)
}

type RunResult struct {
	ShiftID       string    `json:"shift_id"`
	Status        RunStatus `json:"status"`
	EmployeeCount int       `json:"employee_count"`
	Skipped       bool      `json:"skipped"`
}
