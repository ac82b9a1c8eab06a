package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/employee"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/database"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/repository/postgresql"
)

// staleRunTimeout bounds how long a started history row is trusted to be a
// run still in flight.
const staleRunTimeout = time.Hour

type ComputationServiceImpl struct {
	db           *database.DB
	shiftRepo    shift.ShiftRepository
	logRepo      shift.ScheduleLogRepository
	scanRepo     scan.ScanRepository
	attRepo      attendance.AttendanceRepository
	historyRepo  attendance.HistoryRepository
	employeeRepo employee.EmployeeRepository
	orgRepo      organization.OrganizationRepository
	holidayRepo  organization.HolidayRepository
}

func NewComputationService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	logRepo shift.ScheduleLogRepository,
	scanRepo scan.ScanRepository,
	attRepo attendance.AttendanceRepository,
	historyRepo attendance.HistoryRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo organization.OrganizationRepository,
	holidayRepo organization.HolidayRepository,
) attendance.ComputationService {
	return &ComputationServiceImpl{
		db:           db,
		shiftRepo:    shiftRepo,
		logRepo:      logRepo,
		scanRepo:     scanRepo,
		attRepo:      attRepo,
		historyRepo:  historyRepo,
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
		holidayRepo:  holidayRepo,
	}
}

// RunComputation implements attendance.ComputationService.
func (s *ComputationServiceImpl) RunComputation(ctx context.Context, organizationID string, shiftID string, now time.Time) (attendance.RunResult, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID, organizationID)
	if err != nil {
		return attendance.RunResult{}, err
	}
	if sh.Status != shift.ShiftStatusActive {
		return attendance.RunResult{ShiftID: shiftID, Skipped: true}, nil
	}

	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return attendance.RunResult{}, err
	}
	loc, err := time.LoadLocation(org.Timezone)
	if err != nil {
		loc = time.UTC
	}
	nowLocal := now.In(loc)
	today := shift.Day(nowLocal)

	if nowLocal.Hour() < sh.ComputationTime.Hour() {
		return attendance.RunResult{ShiftID: shiftID, Skipped: true}, nil
	}

	latest, found, err := s.historyRepo.GetLatest(ctx, shiftID, organizationID)
	if err != nil {
		return attendance.RunResult{}, fmt.Errorf("failed to check computation history: %w", err)
	}
	if found && shift.Day(latest.ComputationStartedAt.In(loc)).Equal(today) {
		switch latest.Status {
		case attendance.RunStatusCompleted:
			return attendance.RunResult{}, attendance.ErrRunAlreadyDone
		case attendance.RunStatusStarted:
			// A recent started row is a run in flight. An older one is a
			// crashed run whose day must remain retryable.
			if nowLocal.Sub(latest.ComputationStartedAt) < staleRunTimeout {
				return attendance.RunResult{}, attendance.ErrRunAlreadyDone
			}
		}
		// Failed runs never block a same-day retry.
	}

	hist, err := s.historyRepo.Create(ctx, attendance.ComputationHistory{
		ShiftID:              shiftID,
		OrganizationID:       organizationID,
		Status:               attendance.RunStatusStarted,
		ComputationStartedAt: nowLocal,
	})
	if err != nil {
		return attendance.RunResult{}, fmt.Errorf("failed to create computation history: %w", err)
	}

	attendanceDate := today
	if sh.IsNight() {
		attendanceDate = today.AddDate(0, 0, -1)
	}
	shiftStart, shiftEnd := sh.Window(attendanceDate)

	// Scans eligible for this run sit between yesterday's and today's
	// computation instants.
	computationEnd := time.Date(today.Year(), today.Month(), today.Day(),
		sh.ComputationTime.Hour(), 0, 0, 0, loc)
	computationStart := computationEnd.AddDate(0, 0, -1)

	settings, err := s.orgRepo.GetShiftSettings(ctx, organizationID)
	if err != nil {
		s.finalize(ctx, hist.ID, attendance.RunStatusFailed, 0)
		return attendance.RunResult{}, fmt.Errorf("failed to load shift settings: %w", err)
	}

	logs, err := s.logRepo.ListActiveCoveringDate(ctx, organizationID, shiftID, attendanceDate)
	if err != nil {
		s.finalize(ctx, hist.ID, attendance.RunStatusFailed, 0)
		return attendance.RunResult{}, fmt.Errorf("failed to load schedule logs: %w", err)
	}

	count := 0
	failed := false
	for _, l := range logs {
		processed, err := s.computeEmployee(ctx, sh, l, attendanceDate, shiftStart, shiftEnd, computationStart, computationEnd, settings)
		if err != nil {
			// One bad record must never block the rest of the run.
			slog.Error("Attendance computation failed for employee",
				"employee_id", l.EmployeeID,
				"shift_id", shiftID,
				"date", attendanceDate.Format("2006-01-02"),
				"error", err)
			failed = true
			continue
		}
		if processed {
			count++
		}
	}

	status := attendance.RunStatusCompleted
	if failed {
		status = attendance.RunStatusFailed
	}
	s.finalize(ctx, hist.ID, status, count)

	return attendance.RunResult{ShiftID: shiftID, Status: status, EmployeeCount: count}, nil
}

func (s *ComputationServiceImpl) finalize(ctx context.Context, historyID string, status attendance.RunStatus, count int) {
	if err := s.historyRepo.Finalize(ctx, historyID, status, count, time.Now()); err != nil {
		slog.Error("Failed to finalize computation history", "history_id", historyID, "error", err)
	}
}

// computeEmployee derives and persists one attendance row. The returned bool
// reports whether the employee was actually processed (inactive employees are
// skipped without counting).
func (s *ComputationServiceImpl) computeEmployee(
	ctx context.Context,
	sh shift.Shift,
	l shift.ShiftScheduleLog,
	attendanceDate, shiftStart, shiftEnd, computationStart, computationEnd time.Time,
	settings organization.ShiftSettings,
) (bool, error) {
	emp, err := s.employeeRepo.GetByID(ctx, l.EmployeeID, l.OrganizationID)
	if err != nil {
		return false, fmt.Errorf("failed to load employee: %w", err)
	}
	if !emp.IsActive() {
		return false, nil
	}

	isHoliday, err := s.holidayRepo.IsHoliday(ctx, l.OrganizationID, attendanceDate, emp.OrgLocationID)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	isSkipDay := sh.IsSkipDay(attendanceDate)

	scans, err := s.scanRepo.ListPendingInRange(ctx, emp.ID, computationStart, computationEnd)
	if err != nil {
		return false, fmt.Errorf("failed to load scans: %w", err)
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		att, existed, err := s.attRepo.GetOrCreate(txCtx, attendance.Attendance{
			EmployeeID:     emp.ID,
			OrganizationID: l.OrganizationID,
			ShiftID:        sh.ID,
			Date:           attendanceDate,
			Status:         attendance.StatusAbsent,
		})
		if err != nil {
			return fmt.Errorf("failed to get or create attendance: %w", err)
		}
		if existed && len(scans) == 0 {
			// Re-run with nothing new to consume: keep the finalized row.
			return nil
		}

		d := Derive(sh, scans, shiftStart, shiftEnd, settings, isSkipDay, isHoliday)
		att.ShiftID = sh.ID
		att.DurationMinutes = d.DurationMinutes
		att.LateCheckIn = d.LateCheckIn
		att.LateCheckOut = d.LateCheckOut
		att.EarlyCheckOut = d.EarlyCheckOut
		att.OvertimeMinutes = d.OvertimeMinutes
		att.OTStatus = d.OTStatus
		att.Status = d.Status
		if err := s.attRepo.Update(txCtx, att); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		pairs, leftover := PairScans(scans)
		var consumed []string
		for _, p := range pairs {
			consumed = append(consumed, p[0].ID, p[1].ID)
		}
		if len(consumed) > 0 {
			if err := s.scanRepo.MarkConsumed(txCtx, consumed, scan.StatusComputed, att.ID); err != nil {
				return fmt.Errorf("failed to mark scans computed: %w", err)
			}
		}
		if leftover != nil {
			if err := s.scanRepo.MarkConsumed(txCtx, []string{leftover.ID}, scan.StatusExpired, att.ID); err != nil {
				return fmt.Errorf("failed to expire unmatched scan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RunDueComputations implements attendance.ComputationService.
func (s *ComputationServiceImpl) RunDueComputations(ctx context.Context, organizationID string, now time.Time) error {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(org.Timezone)
	if err != nil {
		loc = time.UTC
	}
	nowLocal := now.In(loc)

	shifts, err := s.shiftRepo.ListActiveForComputation(ctx, organizationID, nowLocal.Hour())
	if err != nil {
		return fmt.Errorf("failed to list shifts due for computation: %w", err)
	}

	for _, sh := range shifts {
		result, err := s.RunComputation(ctx, organizationID, sh.ID, now)
		if errors.Is(err, attendance.ErrRunAlreadyDone) {
			continue
		}
		if err != nil {
			slog.Error("Attendance computation run failed",
				"organization_id", organizationID,
				"shift_id", sh.ID,
				"error", err)
			continue
		}
		if !result.Skipped {
			slog.Info("Attendance computation run finished",
				"organization_id", organizationID,
				"shift_id", sh.ID,
				"status", result.Status,
				"employee_count", result.EmployeeCount)
		}
	}
	return nil
}

// GetAttendance implements attendance.ComputationService.
func (s *ComputationServiceImpl) GetAttendance(ctx context.Context, id string, organizationID string) (attendance.Response, error) {
	att, err := s.attRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return attendance.Response{}, err
	}
	return mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.ComputationService.
func (s *ComputationServiceImpl) ListAttendance(ctx context.Context, filter attendance.Filter, organizationID string) (attendance.ListResponse, error) {
	attendances, total, err := s.attRepo.List(ctx, filter, organizationID)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.Response, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(max(filter.Limit, 1))))
	return attendance.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.Response {
	var otStatus *string
	if att.OTStatus != nil {
		v := string(*att.OTStatus)
		otStatus = &v
	}
	return attendance.Response{
		ID:              att.ID,
		EmployeeID:      att.EmployeeID,
		ShiftID:         att.ShiftID,
		Date:            att.Date.Format("2006-01-02"),
		DurationMinutes: att.DurationMinutes,
		LateCheckIn:     att.LateCheckIn,
		LateCheckOut:    att.LateCheckOut,
		EarlyCheckOut:   att.EarlyCheckOut,
		OvertimeMinutes: att.OvertimeMinutes,
		OTStatus:        otStatus,
		Status:          string(att.Status),
		CreatedAt:       att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
