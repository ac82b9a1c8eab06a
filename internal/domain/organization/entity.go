package organization

import "time"

type Organization struct {
	ID        string
	Name      string
	Timezone  string // IANA name, e.g. "Asia/Jakarta"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Applicability attribute kinds used by the priority-based auto-assignment.
const (
	SourceDepartment  = "department"
	SourceDesignation = "designation"
	SourceOrgLocation = "org_location"
)

// ShiftSettings is the organization's shift-management configuration,
// validated and defaulted at load time instead of read out of a JSON blob.
type ShiftSettings struct {
	OTApproval            bool
	AutomatedOTApproval   bool
	MinimumOTMinutes      int
	ApplicabilityPriority []string // ordered subset of the Source* kinds
	GeoFencingEnabled     bool
	FaceRecEnabled        bool
}

// DefaultShiftSettings returns the settings applied when an organization has
// no stored configuration.
func DefaultShiftSettings() ShiftSettings {
	return ShiftSettings{
		OTApproval:            false,
		AutomatedOTApproval:   false,
		MinimumOTMinutes:      30,
		ApplicabilityPriority: []string{SourceDepartment, SourceDesignation, SourceOrgLocation},
		GeoFencingEnabled:     false,
		FaceRecEnabled:        false,
	}
}

// ShiftSource is a priority attribute (department, designation or org
// location) that may carry a default shift for its members.
type ShiftSource struct {
	Kind        string
	ID          string
	Active      bool
	ShiftID     string
	ShiftActive bool
}

// HasActiveShift reports whether the source can win the priority resolution.
func (s ShiftSource) HasActiveShift() bool {
	return s.Active && s.ShiftID != "" && s.ShiftActive
}

type Holiday struct {
	ID             string
	OrganizationID string
	Name           string
	Date           time.Time
	OrgLocationID  *string // nil applies to the whole organization
}
