package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type historyRepositoryImpl struct {
	db *database.DB
}

func NewHistoryRepository(db *database.DB) attendance.HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

// Create implements attendance.HistoryRepository.
func (r *historyRepositoryImpl) Create(ctx context.Context, h attendance.ComputationHistory) (attendance.ComputationHistory, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.ComputationHistory{}, fmt.Errorf("failed to generate history id: %w", err)
	}
	h.ID = id.String()

	query := `
		INSERT INTO attendance_computation_histories (
			id, shift_id, organization_id, status, employee_count,
			computation_started_at, computation_ended_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NULL
		)
	`

	_, err = q.Exec(ctx, query,
		h.ID, h.ShiftID, h.OrganizationID, h.Status, h.EmployeeCount, h.ComputationStartedAt,
	)
	if err != nil {
		return attendance.ComputationHistory{}, fmt.Errorf("failed to create computation history: %w", err)
	}

	return h, nil
}

// Finalize implements attendance.HistoryRepository.
func (r *historyRepositoryImpl) Finalize(ctx context.Context, id string, status attendance.RunStatus, employeeCount int, endedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_computation_histories
		SET status = $1, employee_count = $2, computation_ended_at = $3
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, status, employeeCount, endedAt, id)
	if err != nil {
		return fmt.Errorf("failed to finalize computation history: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrRunNotFound
	}

	return nil
}

// GetLatest implements attendance.HistoryRepository.
func (r *historyRepositoryImpl) GetLatest(ctx context.Context, shiftID string, organizationID string) (attendance.ComputationHistory, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, organization_id, status, employee_count,
			computation_started_at, computation_ended_at
		FROM attendance_computation_histories
		WHERE shift_id = $1 AND organization_id = $2
		ORDER BY computation_started_at DESC
		LIMIT 1
	`

	var h attendance.ComputationHistory
	err := q.QueryRow(ctx, query, shiftID, organizationID).Scan(
		&h.ID, &h.ShiftID, &h.OrganizationID, &h.Status, &h.EmployeeCount,
		&h.ComputationStartedAt, &h.ComputationEndedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ComputationHistory{}, false, nil
		}
		return attendance.ComputationHistory{}, false, fmt.Errorf("failed to get latest computation history: %w", err)
	}

	return h, true, nil
}
