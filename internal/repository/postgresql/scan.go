package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type scanRepositoryImpl struct {
	db *database.DB
}

func NewScanRepository(db *database.DB) scan.ScanRepository {
	return &scanRepositoryImpl{db: db}
}

// Create implements scan.ScanRepository.
func (r *scanRepositoryImpl) Create(ctx context.Context, s scan.Scan) (scan.Scan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO scans (
			id, employee_id, organization_id, date_time, scan_type, status,
			is_computed, attendance_id, latitude, longitude, location_id, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, false, NULL, $6, $7, $8, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.OrganizationID, s.DateTime, s.ScanType, s.Status,
		s.Latitude, s.Longitude, s.LocationID,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return scan.Scan{}, fmt.Errorf("failed to create scan: %w", err)
	}

	return s, nil
}

// GetLastPending implements scan.ScanRepository.
func (r *scanRepositoryImpl) GetLastPending(ctx context.Context, employeeID string) (scan.Scan, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, date_time, scan_type, status,
			is_computed, attendance_id, latitude, longitude, location_id, created_at
		FROM scans
		WHERE employee_id = $1 AND status = 'pending' AND is_computed = false
		ORDER BY date_time DESC
		LIMIT 1
	`

	s, err := scanScanRow(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return scan.Scan{}, false, nil
		}
		return scan.Scan{}, false, fmt.Errorf("failed to get last pending scan: %w", err)
	}

	return s, true, nil
}

// ListPendingInRange implements scan.ScanRepository.
func (r *scanRepositoryImpl) ListPendingInRange(ctx context.Context, employeeID string, from, to time.Time) ([]scan.Scan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, organization_id, date_time, scan_type, status,
			is_computed, attendance_id, latitude, longitude, location_id, created_at
		FROM scans
		WHERE employee_id = $1
			AND status = 'pending'
			AND is_computed = false
			AND date_time >= $2
			AND date_time <= $3
		ORDER BY date_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending scans: %w", err)
	}
	defer rows.Close()

	var scans []scan.Scan
	for rows.Next() {
		s, err := scanScanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}

	return scans, nil
}

// MarkConsumed implements scan.ScanRepository. The status guard makes the
// transition at-most-once: rows already consumed by an earlier run are left
// untouched.
func (r *scanRepositoryImpl) MarkConsumed(ctx context.Context, ids []string, status scan.Status, attendanceID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE scans
		SET status = $1, is_computed = true, attendance_id = $2
		WHERE id = ANY($3) AND status = 'pending' AND is_computed = false
	`

	if _, err := q.Exec(ctx, query, status, attendanceID, ids); err != nil {
		return fmt.Errorf("failed to mark scans consumed: %w", err)
	}

	return nil
}

func scanScanRow(row pgx.Row) (scan.Scan, error) {
	var s scan.Scan

	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.OrganizationID, &s.DateTime, &s.ScanType, &s.Status,
		&s.IsComputed, &s.AttendanceID, &s.Latitude, &s.Longitude, &s.LocationID, &s.CreatedAt,
	)
	if err != nil {
		return scan.Scan{}, err
	}

	return s, nil
}
