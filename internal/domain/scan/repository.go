package scan

import (
	"context"
	"time"
)

// ScanRepository is the append-only scan ledger.
type ScanRepository interface {
	Create(ctx context.Context, s Scan) (Scan, error)

	// GetLastPending returns the employee's most recent pending, uncomputed
	// scan, if any.
	GetLastPending(ctx context.Context, employeeID string) (Scan, bool, error)

	// ListPendingInRange returns pending, uncomputed scans for an employee
	// within [from, to], strictly ordered by scan time.
	ListPendingInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Scan, error)

	// MarkConsumed flips the given scans to status (computed or expired) and
	// attaches them to an attendance row. At-most-once: rows already consumed
	// are not touched.
	MarkConsumed(ctx context.Context, ids []string, status Status, attendanceID string) error
}

// GeoFenceResolver matches device coordinates against candidate locations.
type GeoFenceResolver interface {
	ResolveGeoFence(ctx context.Context, lat, lon float64, candidates []CandidateLocation) (CandidateLocation, error)
}

type CandidateLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Active       bool
}

// FaceMatcher matches a captured image against known member encodings.
// Implementations must return ErrFaceNoMatch and ErrFaceAmbiguousMatch as
// distinct error kinds.
type FaceMatcher interface {
	MatchFace(ctx context.Context, image []byte, candidates []FaceEncoding) (memberID string, err error)
}

type FaceEncoding struct {
	MemberID string
	Encoding []float64
}
