package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type scheduleLogRepositoryImpl struct {
	db *database.DB
}

func NewScheduleLogRepository(db *database.DB) shift.ScheduleLogRepository {
	return &scheduleLogRepositoryImpl{db: db}
}

// Create implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) Create(ctx context.Context, log shift.ShiftScheduleLog) (shift.ShiftScheduleLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_schedule_logs (
			id, employee_id, organization_id, shift_id, start_date, end_date,
			status, is_esm, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	var endDate *time.Time
	if end, bounded := log.EndDate.Date(); bounded {
		endDate = &end
	}

	err := q.QueryRow(ctx, query,
		log.EmployeeID, log.OrganizationID, log.ShiftID, log.StartDate, endDate,
		log.Status, log.IsESM,
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return shift.ShiftScheduleLog{}, fmt.Errorf("failed to create schedule log: %w", err)
	}

	return log, nil
}

// Deactivate implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_schedule_logs
		SET status = 'inactive', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate schedule log: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrScheduleLogNotFound
	}

	return nil
}

// GetActiveCovering implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) GetActiveCovering(ctx context.Context, employeeID string, date time.Time) (shift.ShiftScheduleLog, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, shift_id, start_date, end_date,
			status, is_esm, created_at, updated_at
		FROM shift_schedule_logs
		WHERE employee_id = $1
			AND status = 'active'
			AND start_date <= $2::date
			AND (end_date IS NULL OR end_date >= $2::date)
		LIMIT 1
	`

	log, err := scanScheduleLog(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftScheduleLog{}, false, nil
		}
		return shift.ShiftScheduleLog{}, false, fmt.Errorf("failed to get covering schedule log: %w", err)
	}

	return log, true, nil
}

// GetActiveOverlapping implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) GetActiveOverlapping(ctx context.Context, employeeID string, start time.Time, end shift.DateBound) ([]shift.ShiftScheduleLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, shift_id, start_date, end_date,
			status, is_esm, created_at, updated_at
		FROM shift_schedule_logs
		WHERE employee_id = $1
			AND status = 'active'
			AND (end_date IS NULL OR end_date >= $2::date)
	`
	args := []interface{}{employeeID, start}

	if endDate, bounded := end.Date(); bounded {
		query += " AND start_date <= $3::date"
		args = append(args, endDate)
	}
	query += " ORDER BY start_date ASC"

	return r.queryLogs(ctx, q, query, args...)
}

// GetActiveByShiftFrom implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) GetActiveByShiftFrom(ctx context.Context, shiftID string, organizationID string, date time.Time) ([]shift.ShiftScheduleLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, shift_id, start_date, end_date,
			status, is_esm, created_at, updated_at
		FROM shift_schedule_logs
		WHERE shift_id = $1
			AND organization_id = $2
			AND status = 'active'
			AND (end_date IS NULL OR end_date >= $3::date)
		ORDER BY employee_id, start_date ASC
	`

	return r.queryLogs(ctx, q, query, shiftID, organizationID, date)
}

// ListActiveCoveringDate implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) ListActiveCoveringDate(ctx context.Context, organizationID string, shiftID string, date time.Time) ([]shift.ShiftScheduleLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, shift_id, start_date, end_date,
			status, is_esm, created_at, updated_at
		FROM shift_schedule_logs
		WHERE organization_id = $1
			AND shift_id = $2
			AND status = 'active'
			AND start_date <= $3::date
			AND (end_date IS NULL OR end_date >= $3::date)
		ORDER BY employee_id
	`

	return r.queryLogs(ctx, q, query, organizationID, shiftID, date)
}

// Timeline implements shift.ScheduleLogRepository.
func (r *scheduleLogRepositoryImpl) Timeline(ctx context.Context, employeeID string, organizationID string, page, limit int) ([]shift.ShiftScheduleLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM shift_schedule_logs
		WHERE employee_id = $1 AND organization_id = $2 AND status = 'active'
	`
	if err := q.QueryRow(ctx, countQuery, employeeID, organizationID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timeline: %w", err)
	}

	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, employee_id, organization_id, shift_id, start_date, end_date,
			status, is_esm, created_at, updated_at
		FROM shift_schedule_logs
		WHERE employee_id = $1 AND organization_id = $2 AND status = 'active'
		ORDER BY start_date ASC
		LIMIT $3 OFFSET $4
	`

	logs, err := r.queryLogs(ctx, q, query, employeeID, organizationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *scheduleLogRepositoryImpl) queryLogs(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]shift.ShiftScheduleLog, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule logs: %w", err)
	}
	defer rows.Close()

	var logs []shift.ShiftScheduleLog
	for rows.Next() {
		log, err := scanScheduleLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule logs: %w", err)
	}

	return logs, nil
}

func scanScheduleLog(row pgx.Row) (shift.ShiftScheduleLog, error) {
	var log shift.ShiftScheduleLog
	var endDate *time.Time

	err := row.Scan(
		&log.ID, &log.EmployeeID, &log.OrganizationID, &log.ShiftID,
		&log.StartDate, &endDate, &log.Status, &log.IsESM,
		&log.CreatedAt, &log.UpdatedAt,
	)
	if err != nil {
		return shift.ShiftScheduleLog{}, err
	}

	if endDate != nil {
		log.EndDate = shift.Bounded(*endDate)
	} else {
		log.EndDate = shift.Unbounded()
	}
	return log, nil
}
