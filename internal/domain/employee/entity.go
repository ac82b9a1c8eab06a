package employee

import "time"

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID             string
	OrganizationID string
	FullName       string
	Status         EmploymentStatus
	DepartmentID   *string
	DesignationID  *string
	OrgLocationID  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
