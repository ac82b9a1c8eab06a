package scan

import "time"

type Type string

const (
	TypeCheckIn  Type = "check_in"
	TypeCheckOut Type = "check_out"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusComputed Status = "computed"
	StatusExpired  Status = "expired"
)

// Scan is one swipe event. Rows are append-only: the only mutation ever made
// is the pending -> computed/expired transition performed by the computation
// engine, at most once per scan.
type Scan struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	DateTime       time.Time // stored UTC, interpreted in the org time zone
	ScanType       Type
	Status         Status
	IsComputed     bool
	AttendanceID   *string
	Latitude       *float64
	Longitude      *float64
	LocationID     *string
	CreatedAt      time.Time
}
