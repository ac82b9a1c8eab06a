package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// GetOrCreate implements attendance.AttendanceRepository. The unique index on
// (employee_id, date, organization_id) plus ON CONFLICT DO NOTHING makes the
// insert race-free: the loser of a concurrent insert falls through to the
// select and reports the row as pre-existing.
func (r *attendanceRepositoryImpl) GetOrCreate(ctx context.Context, a attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO attendances (
			id, employee_id, organization_id, shift_id, date,
			duration_minutes, late_check_in, late_check_out, early_check_out,
			overtime_minutes, ot_status, status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date, organization_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, insertQuery,
		a.EmployeeID, a.OrganizationID, a.ShiftID, a.Date,
		a.DurationMinutes, a.LateCheckIn, a.LateCheckOut, a.EarlyCheckOut,
		a.OvertimeMinutes, a.OTStatus, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err == nil {
		return a, false, nil
	}
	if err != pgx.ErrNoRows {
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	selectQuery := `
		SELECT id, employee_id, organization_id, shift_id, date,
			duration_minutes, late_check_in, late_check_out, early_check_out,
			overtime_minutes, ot_status, status, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2::date AND organization_id = $3
	`

	existing, err := scanAttendance(q.QueryRow(ctx, selectQuery, a.EmployeeID, a.Date, a.OrganizationID))
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to get attendance: %w", err)
	}

	return existing, true, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET shift_id = $1, duration_minutes = $2, late_check_in = $3,
			late_check_out = $4, early_check_out = $5, overtime_minutes = $6,
			ot_status = $7, status = $8, updated_at = NOW()
		WHERE id = $9 AND organization_id = $10
	`

	commandTag, err := q.Exec(ctx, query,
		a.ShiftID, a.DurationMinutes, a.LateCheckIn,
		a.LateCheckOut, a.EarlyCheckOut, a.OvertimeMinutes,
		a.OTStatus, a.Status, a.ID, a.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, shift_id, date,
			duration_minutes, late_check_in, late_check_out, early_check_out,
			overtime_minutes, ot_status, status, created_at, updated_at
		FROM attendances
		WHERE id = $1 AND organization_id = $2
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter, organizationID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.ShiftID != "" {
		where += fmt.Sprintf(" AND shift_id = $%d", argIdx)
		args = append(args, filter.ShiftID)
		argIdx++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND date >= $%d::date", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND date <= $%d::date", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT id, employee_id, organization_id, shift_id, date,
			duration_minutes, late_check_in, late_check_out, early_check_out,
			overtime_minutes, ot_status, status, created_at, updated_at
		FROM attendances
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating attendances: %w", err)
	}

	return attendances, total, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance

	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.OrganizationID, &a.ShiftID, &a.Date,
		&a.DurationMinutes, &a.LateCheckIn, &a.LateCheckOut, &a.EarlyCheckOut,
		&a.OvertimeMinutes, &a.OTStatus, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return a, nil
}
