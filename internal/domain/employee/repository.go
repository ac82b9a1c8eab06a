package employee

import (
	"context"
	"errors"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, organizationID string) (Employee, error)
}
