package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/employee"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, full_name, status,
			department_id, designation_id, org_location_id,
			created_at, updated_at
		FROM employees
		WHERE id = $1 AND organization_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&e.ID, &e.OrganizationID, &e.FullName, &e.Status,
		&e.DepartmentID, &e.DesignationID, &e.OrgLocationID,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}
