package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/employee"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
)

type fakeShiftRepo struct {
	shifts    map[string]shift.Shift
	statusSet []shift.ShiftStatus
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return shift.Shift{}, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, organizationID string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) GetByIDs(ctx context.Context, ids []string, organizationID string) (map[string]shift.Shift, error) {
	return f.shifts, nil
}

func (f *fakeShiftRepo) List(ctx context.Context, organizationID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	return nil, 0, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) error { return nil }

func (f *fakeShiftRepo) SetStatus(ctx context.Context, id string, organizationID string, status shift.ShiftStatus) error {
	f.statusSet = append(f.statusSet, status)
	return nil
}

func (f *fakeShiftRepo) ListActiveForComputation(ctx context.Context, organizationID string, hour int) ([]shift.Shift, error) {
	return nil, nil
}

type fakeLogRepo struct {
	covering    shift.ShiftScheduleLog
	hasCovering bool

	coveringDates  []time.Time
	byShiftFromArg time.Time
}

func (f *fakeLogRepo) Create(ctx context.Context, log shift.ShiftScheduleLog) (shift.ShiftScheduleLog, error) {
	return log, nil
}

func (f *fakeLogRepo) Deactivate(ctx context.Context, id string) error { return nil }

func (f *fakeLogRepo) GetActiveCovering(ctx context.Context, employeeID string, d time.Time) (shift.ShiftScheduleLog, bool, error) {
	f.coveringDates = append(f.coveringDates, d)
	return f.covering, f.hasCovering, nil
}

func (f *fakeLogRepo) GetActiveOverlapping(ctx context.Context, employeeID string, start time.Time, end shift.DateBound) ([]shift.ShiftScheduleLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) GetActiveByShiftFrom(ctx context.Context, shiftID string, organizationID string, d time.Time) ([]shift.ShiftScheduleLog, error) {
	f.byShiftFromArg = d
	return nil, nil
}

func (f *fakeLogRepo) ListActiveCoveringDate(ctx context.Context, organizationID string, shiftID string, d time.Time) ([]shift.ShiftScheduleLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) Timeline(ctx context.Context, employeeID string, organizationID string, page, limit int) ([]shift.ShiftScheduleLog, int64, error) {
	return nil, 0, nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, organizationID string) (employee.Employee, error) {
	return employee.Employee{ID: id, OrganizationID: organizationID, Status: employee.StatusActive}, nil
}

type fakeOrgRepo struct {
	timezone string
	sources  map[string]organization.ShiftSource
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	return organization.Organization{ID: id, Timezone: f.timezone}, nil
}

func (f *fakeOrgRepo) ListIDs(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeOrgRepo) GetShiftSettings(ctx context.Context, organizationID string) (organization.ShiftSettings, error) {
	return organization.DefaultShiftSettings(), nil
}

func (f *fakeOrgRepo) GetShiftSources(ctx context.Context, employeeID string, organizationID string) (map[string]organization.ShiftSource, error) {
	return f.sources, nil
}

func (f *fakeOrgRepo) ListScanLocations(ctx context.Context, organizationID string) ([]scan.CandidateLocation, error) {
	return nil, nil
}

func (f *fakeOrgRepo) ListFaceEncodings(ctx context.Context, organizationID string) ([]scan.FaceEncoding, error) {
	return nil, nil
}

func dayShiftTemplate(id string) shift.Shift {
	return shift.Shift{
		ID:              id,
		OrganizationID:  "org-1",
		StartTime:       time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		ComputationTime: time.Date(0, 1, 1, 20, 0, 0, 0, time.UTC),
		Status:          shift.ShiftStatusActive,
	}
}

func nightShiftTemplate(id string) shift.Shift {
	s := dayShiftTemplate(id)
	s.StartTime = time.Date(0, 1, 1, 22, 0, 0, 0, time.UTC)
	s.EndTime = time.Date(0, 1, 1, 6, 0, 0, 0, time.UTC)
	s.ComputationTime = time.Date(0, 1, 1, 7, 0, 0, 0, time.UTC)
	return s
}

func newTimelineService(shiftRepo *fakeShiftRepo, logRepo *fakeLogRepo, orgRepo *fakeOrgRepo) shift.TimelineService {
	return NewTimelineService(nil, shiftRepo, logRepo, &fakeEmployeeRepo{}, orgRepo)
}

func TestAssignShiftAnchorsTodayToOrgTimeZone(t *testing.T) {
	// 19:00 UTC on Mar 10 is already Mar 11 in Jakarta, so a single-day
	// assignment for Mar 10 lies entirely in the organization's past.
	now := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	shiftRepo := &fakeShiftRepo{shifts: map[string]shift.Shift{"shift-a": dayShiftTemplate("shift-a")}}
	svc := newTimelineService(shiftRepo, &fakeLogRepo{}, &fakeOrgRepo{timezone: "Asia/Jakarta"})

	end := "2025-03-10"
	_, err := svc.AssignShift(context.Background(), shift.AssignShiftRequest{
		EmployeeID:     "emp-1",
		OrganizationID: "org-1",
		ShiftID:        "shift-a",
		StartDate:      "2025-03-10",
		EndDate:        &end,
		Now:            now,
	})
	require.ErrorIs(t, err, shift.ErrInvalidDateRange)
}

func TestPriorityAssignAnchorsTodayToOrgTimeZone(t *testing.T) {
	// 02:00 UTC on Mar 11 is still Mar 10 at UTC-8; the currently effective
	// log must be looked up on the organization's Mar 10, not the server's
	// Mar 11.
	now := time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)
	shiftRepo := &fakeShiftRepo{shifts: map[string]shift.Shift{"shift-a": dayShiftTemplate("shift-a")}}
	logRepo := &fakeLogRepo{
		covering:    shift.ShiftScheduleLog{ID: "log-1", ShiftID: "shift-a", Status: shift.LogStatusActive},
		hasCovering: true,
	}
	orgRepo := &fakeOrgRepo{
		timezone: "Etc/GMT+8",
		sources: map[string]organization.ShiftSource{
			organization.SourceDepartment: {
				Kind:        organization.SourceDepartment,
				Active:      true,
				ShiftID:     "shift-a",
				ShiftActive: true,
			},
		},
	}
	svc := newTimelineService(shiftRepo, logRepo, orgRepo)

	created, err := svc.PriorityAssign(context.Background(), "emp-1", "org-1", now)
	require.NoError(t, err)
	assert.Nil(t, created)

	require.Len(t, logRepo.coveringDates, 1)
	assert.Equal(t, date(2025, 3, 10), logRepo.coveringDates[0])
}

func TestDeactivateShiftEffectiveDateInOrgTimeZone(t *testing.T) {
	t.Run("day shift replaced from org-local tomorrow", func(t *testing.T) {
		// 02:00 UTC on Mar 11 is 18:00 on Mar 10 at UTC-8: the replacement
		// takes over on Mar 11, not Mar 12.
		now := time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)
		shiftRepo := &fakeShiftRepo{shifts: map[string]shift.Shift{
			"shift-a": dayShiftTemplate("shift-a"),
			"shift-b": dayShiftTemplate("shift-b"),
		}}
		logRepo := &fakeLogRepo{}
		svc := newTimelineService(shiftRepo, logRepo, &fakeOrgRepo{timezone: "Etc/GMT+8"})

		err := svc.DeactivateShift(context.Background(), "shift-a", "shift-b", "org-1", now)
		require.NoError(t, err)

		assert.Equal(t, date(2025, 3, 11), logRepo.byShiftFromArg)
		assert.Equal(t, []shift.ShiftStatus{shift.ShiftStatusInactive}, shiftRepo.statusSet)
	})

	t.Run("open night occurrence keeps today effective", func(t *testing.T) {
		// 14:00 UTC on Mar 10 is 06:00 local: the night occurrence that began
		// on Mar 9 is still open until its 07:00 computation instant, so the
		// replacement starts today.
		now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
		shiftRepo := &fakeShiftRepo{shifts: map[string]shift.Shift{
			"shift-a": nightShiftTemplate("shift-a"),
			"shift-b": dayShiftTemplate("shift-b"),
		}}
		logRepo := &fakeLogRepo{}
		svc := newTimelineService(shiftRepo, logRepo, &fakeOrgRepo{timezone: "Etc/GMT+8"})

		err := svc.DeactivateShift(context.Background(), "shift-a", "shift-b", "org-1", now)
		require.NoError(t, err)

		assert.Equal(t, date(2025, 3, 10), logRepo.byShiftFromArg)
	})
}
