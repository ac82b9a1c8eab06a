package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, organization_id, name, start_time, end_time, computation_time,
			present_working_hours, partial_working_hours, skip_days, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.OrganizationID, s.Name, s.StartTime, s.EndTime, s.ComputationTime,
		s.PresentWorkingHours, s.PartialWorkingHours, weekdaysToInts(s.SkipDays), s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, start_time, end_time, computation_time,
			present_working_hours, partial_working_hours, skip_days, status,
			created_at, updated_at
		FROM shifts
		WHERE id = $1 AND organization_id = $2
	`

	s, err := scanShift(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// GetByIDs implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByIDs(ctx context.Context, ids []string, organizationID string) (map[string]shift.Shift, error) {
	result := make(map[string]shift.Shift, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, start_time, end_time, computation_time,
			present_working_hours, partial_working_hours, skip_days, status,
			created_at, updated_at
		FROM shifts
		WHERE id = ANY($1) AND organization_id = $2
	`

	rows, err := q.Query(ctx, query, ids, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		result[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return result, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, organizationID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM shifts WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
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
		SELECT id, organization_id, name, start_time, end_time, computation_time,
			present_working_hours, partial_working_hours, skip_days, status,
			created_at, updated_at
		FROM shifts
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, total, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $1, start_time = $2, end_time = $3, computation_time = $4,
			present_working_hours = $5, partial_working_hours = $6, skip_days = $7,
			updated_at = NOW()
		WHERE id = $8 AND organization_id = $9
	`

	commandTag, err := q.Exec(ctx, query,
		s.Name, s.StartTime, s.EndTime, s.ComputationTime,
		s.PresentWorkingHours, s.PartialWorkingHours, weekdaysToInts(s.SkipDays),
		s.ID, s.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// SetStatus implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) SetStatus(ctx context.Context, id string, organizationID string, status shift.ShiftStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
	`

	commandTag, err := q.Exec(ctx, query, status, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to set shift status: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// ListActiveForComputation implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListActiveForComputation(ctx context.Context, organizationID string, hour int) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, start_time, end_time, computation_time,
			present_working_hours, partial_working_hours, skip_days, status,
			created_at, updated_at
		FROM shifts
		WHERE organization_id = $1
			AND status = 'active'
			AND EXTRACT(HOUR FROM computation_time)::int <= $2
	`

	rows, err := q.Query(ctx, query, organizationID, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for computation: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var skipDays []int32

	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.Name, &s.StartTime, &s.EndTime, &s.ComputationTime,
		&s.PresentWorkingHours, &s.PartialWorkingHours, &skipDays, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	s.SkipDays = intsToWeekdays(skipDays)
	return s, nil
}

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func intsToWeekdays(days []int32) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}
