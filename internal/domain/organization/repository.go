package organization

import (
	"context"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
)

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (Organization, error)
	ListIDs(ctx context.Context) ([]string, error)

	// GetShiftSettings returns the organization's settings, falling back to
	// DefaultShiftSettings when nothing is stored.
	GetShiftSettings(ctx context.Context, organizationID string) (ShiftSettings, error)

	// GetShiftSources returns the employee's priority attributes keyed by
	// kind (department, designation, org_location). Missing attributes are
	// absent from the map.
	GetShiftSources(ctx context.Context, employeeID string, organizationID string) (map[string]ShiftSource, error)

	// ListScanLocations returns the active candidate locations used for
	// geo-fence resolution.
	ListScanLocations(ctx context.Context, organizationID string) ([]scan.CandidateLocation, error)

	// ListFaceEncodings returns stored face encodings for the organization's
	// active members.
	ListFaceEncodings(ctx context.Context, organizationID string) ([]scan.FaceEncoding, error)
}

type HolidayRepository interface {
	// IsHoliday reports whether date is a holiday applicable to the employee:
	// a holiday with no org-location restriction applies to everyone, one
	// scoped to an org location only when orgLocationID matches and the
	// location is active.
	IsHoliday(ctx context.Context, organizationID string, date time.Time, orgLocationID *string) (bool, error)
}
