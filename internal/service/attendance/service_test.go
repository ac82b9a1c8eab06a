package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
)

type stubShiftRepo struct {
	shift shift.Shift
}

func (s *stubShiftRepo) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	return shift.Shift{}, nil
}

func (s *stubShiftRepo) GetByID(ctx context.Context, id string, organizationID string) (shift.Shift, error) {
	return s.shift, nil
}

func (s *stubShiftRepo) GetByIDs(ctx context.Context, ids []string, organizationID string) (map[string]shift.Shift, error) {
	return nil, nil
}

func (s *stubShiftRepo) List(ctx context.Context, organizationID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	return nil, 0, nil
}

func (s *stubShiftRepo) Update(ctx context.Context, sh shift.Shift) error { return nil }

func (s *stubShiftRepo) SetStatus(ctx context.Context, id string, organizationID string, status shift.ShiftStatus) error {
	return nil
}

func (s *stubShiftRepo) ListActiveForComputation(ctx context.Context, organizationID string, hour int) ([]shift.Shift, error) {
	return nil, nil
}

type stubScheduleLogRepo struct{}

func (s *stubScheduleLogRepo) Create(ctx context.Context, log shift.ShiftScheduleLog) (shift.ShiftScheduleLog, error) {
	return log, nil
}

func (s *stubScheduleLogRepo) Deactivate(ctx context.Context, id string) error { return nil }

func (s *stubScheduleLogRepo) GetActiveCovering(ctx context.Context, employeeID string, date time.Time) (shift.ShiftScheduleLog, bool, error) {
	return shift.ShiftScheduleLog{}, false, nil
}

func (s *stubScheduleLogRepo) GetActiveOverlapping(ctx context.Context, employeeID string, start time.Time, end shift.DateBound) ([]shift.ShiftScheduleLog, error) {
	return nil, nil
}

func (s *stubScheduleLogRepo) GetActiveByShiftFrom(ctx context.Context, shiftID string, organizationID string, date time.Time) ([]shift.ShiftScheduleLog, error) {
	return nil, nil
}

func (s *stubScheduleLogRepo) ListActiveCoveringDate(ctx context.Context, organizationID string, shiftID string, date time.Time) ([]shift.ShiftScheduleLog, error) {
	return nil, nil
}

func (s *stubScheduleLogRepo) Timeline(ctx context.Context, employeeID string, organizationID string, page, limit int) ([]shift.ShiftScheduleLog, int64, error) {
	return nil, 0, nil
}

type stubOrgRepo struct{}

func (s *stubOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	return organization.Organization{ID: id, Timezone: "UTC"}, nil
}

func (s *stubOrgRepo) ListIDs(ctx context.Context) ([]string, error) { return nil, nil }

func (s *stubOrgRepo) GetShiftSettings(ctx context.Context, organizationID string) (organization.ShiftSettings, error) {
	return organization.DefaultShiftSettings(), nil
}

func (s *stubOrgRepo) GetShiftSources(ctx context.Context, employeeID string, organizationID string) (map[string]organization.ShiftSource, error) {
	return nil, nil
}

func (s *stubOrgRepo) ListScanLocations(ctx context.Context, organizationID string) ([]scan.CandidateLocation, error) {
	return nil, nil
}

func (s *stubOrgRepo) ListFaceEncodings(ctx context.Context, organizationID string) ([]scan.FaceEncoding, error) {
	return nil, nil
}

type stubHistoryRepo struct {
	latest    attendance.ComputationHistory
	hasLatest bool

	created   []attendance.ComputationHistory
	finalized []attendance.RunStatus
}

func (s *stubHistoryRepo) Create(ctx context.Context, h attendance.ComputationHistory) (attendance.ComputationHistory, error) {
	h.ID = "run-1"
	s.created = append(s.created, h)
	return h, nil
}

func (s *stubHistoryRepo) Finalize(ctx context.Context, id string, status attendance.RunStatus, employeeCount int, endedAt time.Time) error {
	s.finalized = append(s.finalized, status)
	return nil
}

func (s *stubHistoryRepo) GetLatest(ctx context.Context, shiftID string, organizationID string) (attendance.ComputationHistory, bool, error) {
	return s.latest, s.hasLatest, nil
}

func guardShift() shift.Shift {
	sh := standardShift()
	sh.ID = "shift-1"
	sh.OrganizationID = "org-1"
	sh.Status = shift.ShiftStatusActive
	return sh
}

func guardService(sh shift.Shift, history *stubHistoryRepo) attendance.ComputationService {
	return NewComputationService(nil, &stubShiftRepo{shift: sh}, &stubScheduleLogRepo{}, nil, nil, history, nil, &stubOrgRepo{}, nil)
}

func TestRunComputationSameDayGuard(t *testing.T) {
	now := at(22, 0)

	t.Run("completed run blocks the day", func(t *testing.T) {
		history := &stubHistoryRepo{
			latest:    attendance.ComputationHistory{Status: attendance.RunStatusCompleted, ComputationStartedAt: at(20, 5)},
			hasLatest: true,
		}
		svc := guardService(guardShift(), history)

		_, err := svc.RunComputation(context.Background(), "org-1", "shift-1", now)
		require.ErrorIs(t, err, attendance.ErrRunAlreadyDone)
		assert.Empty(t, history.created)
	})

	t.Run("run in flight blocks the day", func(t *testing.T) {
		history := &stubHistoryRepo{
			latest:    attendance.ComputationHistory{Status: attendance.RunStatusStarted, ComputationStartedAt: at(21, 30)},
			hasLatest: true,
		}
		svc := guardService(guardShift(), history)

		_, err := svc.RunComputation(context.Background(), "org-1", "shift-1", now)
		require.ErrorIs(t, err, attendance.ErrRunAlreadyDone)
		assert.Empty(t, history.created)
	})

	t.Run("stale started run is retried", func(t *testing.T) {
		history := &stubHistoryRepo{
			latest:    attendance.ComputationHistory{Status: attendance.RunStatusStarted, ComputationStartedAt: at(20, 15)},
			hasLatest: true,
		}
		svc := guardService(guardShift(), history)

		result, err := svc.RunComputation(context.Background(), "org-1", "shift-1", now)
		require.NoError(t, err)
		assert.Equal(t, attendance.RunStatusCompleted, result.Status)
		require.Len(t, history.created, 1)
		assert.Equal(t, []attendance.RunStatus{attendance.RunStatusCompleted}, history.finalized)
	})

	t.Run("failed run is retried", func(t *testing.T) {
		history := &stubHistoryRepo{
			latest:    attendance.ComputationHistory{Status: attendance.RunStatusFailed, ComputationStartedAt: at(20, 10)},
			hasLatest: true,
		}
		svc := guardService(guardShift(), history)

		_, err := svc.RunComputation(context.Background(), "org-1", "shift-1", now)
		require.NoError(t, err)
		require.Len(t, history.created, 1)
	})

	t.Run("previous day run does not block", func(t *testing.T) {
		history := &stubHistoryRepo{
			latest: attendance.ComputationHistory{
				Status:               attendance.RunStatusCompleted,
				ComputationStartedAt: time.Date(2025, 3, 10, 20, 5, 0, 0, time.UTC),
			},
			hasLatest: true,
		}
		svc := guardService(guardShift(), history)

		_, err := svc.RunComputation(context.Background(), "org-1", "shift-1", now)
		require.NoError(t, err)
		require.Len(t, history.created, 1)
	})

	t.Run("no history runs fresh", func(t *testing.T) {
		history := &stubHistoryRepo{}
		svc := guardService(guardShift(), history)

		result, err := svc.RunComputation(context.Background(), "org-1", "shift-1", now)
		require.NoError(t, err)
		assert.Equal(t, attendance.RunStatusCompleted, result.Status)
	})
}

func TestRunComputationNotYetDue(t *testing.T) {
	history := &stubHistoryRepo{}
	svc := guardService(guardShift(), history)

	result, err := svc.RunComputation(context.Background(), "org-1", "shift-1", at(19, 0))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, history.created)
}

func TestRunComputationInactiveShift(t *testing.T) {
	sh := guardShift()
	sh.Status = shift.ShiftStatusInactive
	history := &stubHistoryRepo{}
	svc := guardService(sh, history)

	result, err := svc.RunComputation(context.Background(), "org-1", "shift-1", at(22, 0))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, history.created)
}
