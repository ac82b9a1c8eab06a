package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
)

type organizationRepositoryImpl struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Timezone, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// ListIDs implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan organization id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}

	return ids, nil
}

// GetShiftSettings implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetShiftSettings(ctx context.Context, organizationID string) (organization.ShiftSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ot_approval, automated_ot_approval, minimum_ot_minutes,
			applicability_priority, geo_fencing_enabled, face_rec_enabled
		FROM organization_shift_settings
		WHERE organization_id = $1
	`

	var settings organization.ShiftSettings
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&settings.OTApproval, &settings.AutomatedOTApproval, &settings.MinimumOTMinutes,
		&settings.ApplicabilityPriority, &settings.GeoFencingEnabled, &settings.FaceRecEnabled,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.DefaultShiftSettings(), nil
		}
		return organization.ShiftSettings{}, fmt.Errorf("failed to get shift settings: %w", err)
	}

	if len(settings.ApplicabilityPriority) == 0 {
		settings.ApplicabilityPriority = organization.DefaultShiftSettings().ApplicabilityPriority
	}

	return settings, nil
}

// GetShiftSources implements organization.OrganizationRepository. One row per
// priority attribute the employee actually has; absent attributes are simply
// missing from the result map.
func (r *organizationRepositoryImpl) GetShiftSources(ctx context.Context, employeeID string, organizationID string) (map[string]organization.ShiftSource, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH emp AS (
			SELECT department_id, designation_id, org_location_id
			FROM employees
			WHERE id = $1 AND organization_id = $2
		)
		SELECT 'department' AS kind, d.id, d.is_active,
			COALESCE(d.default_shift_id, ''), COALESCE(s.status = 'active', false)
		FROM emp
		JOIN departments d ON d.id = emp.department_id
		LEFT JOIN shifts s ON s.id = d.default_shift_id
		UNION ALL
		SELECT 'designation', g.id, g.is_active,
			COALESCE(g.default_shift_id, ''), COALESCE(s.status = 'active', false)
		FROM emp
		JOIN designations g ON g.id = emp.designation_id
		LEFT JOIN shifts s ON s.id = g.default_shift_id
		UNION ALL
		SELECT 'org_location', l.id, l.is_active,
			COALESCE(l.default_shift_id, ''), COALESCE(s.status = 'active', false)
		FROM emp
		JOIN org_locations l ON l.id = emp.org_location_id
		LEFT JOIN shifts s ON s.id = l.default_shift_id
	`

	rows, err := q.Query(ctx, query, employeeID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift sources: %w", err)
	}
	defer rows.Close()

	sources := make(map[string]organization.ShiftSource)
	for rows.Next() {
		var src organization.ShiftSource
		if err := rows.Scan(&src.Kind, &src.ID, &src.Active, &src.ShiftID, &src.ShiftActive); err != nil {
			return nil, fmt.Errorf("failed to scan shift source: %w", err)
		}
		sources[src.Kind] = src
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift sources: %w", err)
	}

	return sources, nil
}

// ListScanLocations implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ListScanLocations(ctx context.Context, organizationID string) ([]scan.CandidateLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, is_active
		FROM org_locations
		WHERE organization_id = $1
			AND is_active = true
			AND latitude IS NOT NULL
			AND longitude IS NOT NULL
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan locations: %w", err)
	}
	defer rows.Close()

	var locations []scan.CandidateLocation
	for rows.Next() {
		var loc scan.CandidateLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters, &loc.Active); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// ListFaceEncodings implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ListFaceEncodings(ctx context.Context, organizationID string) ([]scan.FaceEncoding, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT fe.employee_id, fe.encoding
		FROM face_encodings fe
		JOIN employees e ON e.id = fe.employee_id
		WHERE e.organization_id = $1 AND e.status = 'active'
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list face encodings: %w", err)
	}
	defer rows.Close()

	var encodings []scan.FaceEncoding
	for rows.Next() {
		var enc scan.FaceEncoding
		if err := rows.Scan(&enc.MemberID, &enc.Encoding); err != nil {
			return nil, fmt.Errorf("failed to scan face encoding: %w", err)
		}
		encodings = append(encodings, enc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating face encodings: %w", err)
	}

	return encodings, nil
}
