package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusPartial Status = "partial"
	StatusAbsent  Status = "absent"
	StatusWeekend Status = "weekend"
	StatusHoliday Status = "holiday"
)

type OTStatus string

const (
	OTStatusAvailable OTStatus = "ot_available"
	OTStatusRequested OTStatus = "ot_requested"
)

// Attendance is one derived row per (employee, date, organization), created
// through get-or-create so a re-run of the computation engine is a no-op.
type Attendance struct {
	ID              string
	EmployeeID      string
	OrganizationID  string
	ShiftID         string
	Date            time.Time
	DurationMinutes int // capped at 1440
	LateCheckIn     int
	LateCheckOut    float64
	EarlyCheckOut   float64
	OvertimeMinutes int
	OTStatus        *OTStatus
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RunStatus string

const (
	RunStatusStarted   RunStatus = "started"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ComputationHistory records one computation run per (shift, organization,
// day). It is the engine's idempotency anchor and gates manual shift edits
// while a run is failed or still in flight.
type ComputationHistory struct {
	ID                   string
	ShiftID              string
	OrganizationID       string
	Status               RunStatus
	EmployeeCount        int
	ComputationStartedAt time.Time
	ComputationEndedAt   *time.Time
}
