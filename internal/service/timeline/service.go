package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/employee"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/repository/postgresql"
)

type TimelineServiceImpl struct {
	db           *database.DB
	shiftRepo    shift.ShiftRepository
	logRepo      shift.ScheduleLogRepository
	employeeRepo employee.EmployeeRepository
	orgRepo      organization.OrganizationRepository
}

func NewTimelineService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	logRepo shift.ScheduleLogRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo organization.OrganizationRepository,
) shift.TimelineService {
	return &TimelineServiceImpl{
		db:           db,
		shiftRepo:    shiftRepo,
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
	}
}

// AssignShift implements shift.TimelineService.
func (t *TimelineServiceImpl) AssignShift(ctx context.Context, req shift.AssignShiftRequest) ([]shift.ShiftScheduleLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate := shift.Unbounded()
	if req.EndDate != nil {
		d, _ := validator.IsValidDate(*req.EndDate)
		endDate = shift.Bounded(d)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	sh, err := t.shiftRepo.GetByID(ctx, req.ShiftID, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if sh.Status != shift.ShiftStatusActive {
		return nil, shift.ErrShiftInactive
	}

	if _, err := t.employeeRepo.GetByID(ctx, req.EmployeeID, req.OrganizationID); err != nil {
		return nil, err
	}

	today, _, err := t.orgToday(ctx, req.OrganizationID, now)
	if err != nil {
		return nil, err
	}

	return t.overlay(ctx, req.EmployeeID, req.OrganizationID, req.ShiftID, startDate, endDate, req.IsESM, today)
}

// orgToday resolves the organization's current calendar date at now. The
// date is normalized to a UTC midnight so it compares cleanly with parsed
// request dates and stored log dates, which are all UTC midnights.
func (t *TimelineServiceImpl) orgToday(ctx context.Context, organizationID string, now time.Time) (time.Time, *time.Location, error) {
	org, err := t.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return time.Time{}, nil, err
	}
	loc, err := time.LoadLocation(org.Timezone)
	if err != nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), loc, nil
}

// overlay builds the split plan for [start, end] and applies it in one
// transaction: replacement rows first, then the deactivations, so a crash in
// between leaves the superseded rows still discoverable.
func (t *TimelineServiceImpl) overlay(ctx context.Context, employeeID, organizationID, shiftID string, start time.Time, end shift.DateBound, isESM bool, today time.Time) ([]shift.ShiftScheduleLog, error) {
	queryStart := start
	if queryStart.Before(today) {
		queryStart = today
	}

	logs, err := t.logRepo.GetActiveOverlapping(ctx, employeeID, queryStart, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlapping schedule logs: %w", err)
	}

	plan, err := BuildSplitPlan(logs, shiftID, start, end, isESM, today)
	if err != nil {
		return nil, err
	}
	if plan.IsNoOp() {
		return nil, nil
	}

	var created []shift.ShiftScheduleLog
	err = postgresql.WithTransaction(ctx, t.db, func(txCtx context.Context) error {
		for _, seg := range plan.Create {
			log, err := t.logRepo.Create(txCtx, shift.ShiftScheduleLog{
				EmployeeID:     employeeID,
				OrganizationID: organizationID,
				ShiftID:        seg.ShiftID,
				StartDate:      seg.Start,
				EndDate:        seg.End,
				Status:         shift.LogStatusActive,
				IsESM:          seg.IsESM,
			})
			if err != nil {
				return fmt.Errorf("failed to create schedule log: %w", err)
			}
			created = append(created, log)
		}
		for _, id := range plan.Deactivate {
			if err := t.logRepo.Deactivate(txCtx, id); err != nil {
				return fmt.Errorf("failed to deactivate schedule log %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// PriorityAssign implements shift.TimelineService.
func (t *TimelineServiceImpl) PriorityAssign(ctx context.Context, employeeID string, organizationID string, now time.Time) ([]shift.ShiftScheduleLog, error) {
	settings, err := t.orgRepo.GetShiftSettings(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift settings: %w", err)
	}

	sources, err := t.orgRepo.GetShiftSources(ctx, employeeID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift sources: %w", err)
	}

	var winner string
	for _, kind := range settings.ApplicabilityPriority {
		src, ok := sources[kind]
		if ok && src.HasActiveShift() {
			winner = src.ShiftID
			break
		}
	}
	if winner == "" {
		return nil, organization.ErrNoPrioritySource
	}

	today, _, err := t.orgToday(ctx, organizationID, now)
	if err != nil {
		return nil, err
	}
	current, found, err := t.logRepo.GetActiveCovering(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current schedule log: %w", err)
	}
	if found && current.ShiftID == winner {
		return nil, nil
	}

	return t.overlay(ctx, employeeID, organizationID, winner, today, shift.Unbounded(), false, today)
}

// DeactivateShift implements shift.TimelineService.
func (t *TimelineServiceImpl) DeactivateShift(ctx context.Context, shiftID string, alternativeShiftID string, organizationID string, now time.Time) error {
	sh, err := t.shiftRepo.GetByID(ctx, shiftID, organizationID)
	if err != nil {
		return err
	}
	alt, err := t.shiftRepo.GetByID(ctx, alternativeShiftID, organizationID)
	if err != nil {
		return err
	}
	if alt.Status != shift.ShiftStatusActive {
		return shift.ErrShiftInactive
	}

	today, loc, err := t.orgToday(ctx, organizationID, now)
	if err != nil {
		return err
	}
	effective := DeactivationEffectiveDate(sh, now.In(loc))
	effective = time.Date(effective.Year(), effective.Month(), effective.Day(), 0, 0, 0, 0, time.UTC)

	logs, err := t.logRepo.GetActiveByShiftFrom(ctx, shiftID, organizationID, effective)
	if err != nil {
		return fmt.Errorf("failed to load schedule logs for shift: %w", err)
	}

	failures := 0
	for _, l := range logs {
		start := shift.Day(l.StartDate)
		if start.Before(effective) {
			start = effective
		}
		if _, err := t.overlay(ctx, l.EmployeeID, organizationID, alternativeShiftID, start, l.EndDate, false, today); err != nil {
			if errors.Is(err, shift.ErrInvalidDateRange) {
				continue
			}
			slog.Error("Failed to replace shift on schedule log",
				"employee_id", l.EmployeeID,
				"log_id", l.ID,
				"shift_id", shiftID,
				"error", err)
			failures++
		}
	}
	if failures > 0 {
		// Leave the template active so the deactivation is visibly incomplete
		// and can be retried.
		return fmt.Errorf("failed to replace shift for %d schedule logs", failures)
	}

	if err := t.shiftRepo.SetStatus(ctx, shiftID, organizationID, shift.ShiftStatusInactive); err != nil {
		return fmt.Errorf("failed to deactivate shift template: %w", err)
	}
	return nil
}

// DeactivationEffectiveDate picks the first date the replacement shift takes
// over: today while a night shift's previous occurrence is still open,
// otherwise tomorrow. now must already be in the organization's time zone.
func DeactivationEffectiveDate(sh shift.Shift, now time.Time) time.Time {
	today := shift.Day(now)
	if sh.IsNight() {
		// ComputationInstant of yesterday's occurrence lands on today.
		openUntil := sh.ComputationInstant(today.AddDate(0, 0, -1))
		if !now.After(openUntil) {
			return today
		}
	}
	return today.AddDate(0, 0, 1)
}
