package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) organization.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// IsHoliday implements organization.HolidayRepository. Org-wide holidays have
// no location restriction; location-scoped ones apply only when the employee's
// org location matches and that location is active.
func (r *holidayRepositoryImpl) IsHoliday(ctx context.Context, organizationID string, date time.Time, orgLocationID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM holidays h
			LEFT JOIN org_locations l ON l.id = h.org_location_id
			WHERE h.organization_id = $1
				AND h.date = $2::date
				AND (
					h.org_location_id IS NULL
					OR (h.org_location_id = $3 AND l.is_active = true)
				)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, organizationID, date, orgLocationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}
