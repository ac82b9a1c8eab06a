package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shiftRepo   shift.ShiftRepository
	logRepo     shift.ScheduleLogRepository
	historyRepo attendance.HistoryRepository
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	logRepo shift.ScheduleLogRepository,
	historyRepo attendance.HistoryRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:   shiftRepo,
		logRepo:     logRepo,
		historyRepo: historyRepo,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	start, _ := validator.IsValidTimeOfDay(req.StartTime)
	end, _ := validator.IsValidTimeOfDay(req.EndTime)
	comp, _ := validator.IsValidTimeOfDay(req.ComputationTime)

	sh := shift.Shift{
		OrganizationID:      req.OrganizationID,
		Name:                req.Name,
		StartTime:           start,
		EndTime:             end,
		ComputationTime:     comp,
		PresentWorkingHours: req.PresentWorkingHours,
		PartialWorkingHours: req.PartialWorkingHours,
		SkipDays:            toWeekdays(req.SkipDays),
		Status:              shift.ShiftStatusActive,
	}
	if err := sh.ValidateTemplate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, sh)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return mapShiftToResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string, organizationID string) (shift.ShiftResponse, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return mapShiftToResponse(sh), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, organizationID string, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	shifts, total, err := s.shiftRepo.List(ctx, organizationID, filter)
	if err != nil {
		return shift.ListShiftResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	resp := shift.ListShiftResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Shifts:     make([]shift.ShiftResponse, 0, len(shifts)),
	}
	for _, sh := range shifts {
		resp.Shifts = append(resp.Shifts, mapShiftToResponse(sh))
	}
	return resp, nil
}

// UpdateShift implements shift.ShiftService. Edits are rejected while the
// shift's latest computation run is in flight or failed, so a retry always
// recomputes against the template the run started with.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ID, req.OrganizationID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	latest, found, err := s.historyRepo.GetLatest(ctx, sh.ID, req.OrganizationID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to load computation history: %w", err)
	}
	if found && (latest.Status == attendance.RunStatusStarted || latest.Status == attendance.RunStatusFailed) {
		return shift.ShiftResponse{}, shift.ErrShiftLockedForEdit
	}

	if req.Name != nil {
		sh.Name = *req.Name
	}
	if req.StartTime != nil {
		sh.StartTime, _ = validator.IsValidTimeOfDay(*req.StartTime)
	}
	if req.EndTime != nil {
		sh.EndTime, _ = validator.IsValidTimeOfDay(*req.EndTime)
	}
	if req.ComputationTime != nil {
		sh.ComputationTime, _ = validator.IsValidTimeOfDay(*req.ComputationTime)
	}
	if req.PresentWorkingHours != nil {
		sh.PresentWorkingHours = *req.PresentWorkingHours
	}
	if req.PartialWorkingHours != nil {
		sh.PartialWorkingHours = *req.PartialWorkingHours
	}
	if req.SkipDays != nil {
		sh.SkipDays = toWeekdays(*req.SkipDays)
	}
	if err := sh.ValidateTemplate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	sh.UpdatedAt = time.Now().UTC()

	if err := s.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return mapShiftToResponse(sh), nil
}

// GetTimeline implements shift.ShiftService.
func (s *ShiftServiceImpl) GetTimeline(ctx context.Context, employeeID string, organizationID string, page, limit int) (shift.TimelineResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	logs, total, err := s.logRepo.Timeline(ctx, employeeID, organizationID, page, limit)
	if err != nil {
		return shift.TimelineResponse{}, fmt.Errorf("failed to load timeline: %w", err)
	}

	resp := shift.TimelineResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Logs:       make([]shift.ScheduleLogResponse, 0, len(logs)),
	}
	for _, log := range logs {
		entry := shift.ScheduleLogResponse{
			ID:        log.ID,
			ShiftID:   log.ShiftID,
			StartDate: log.StartDate.Format("2006-01-02"),
			IsESM:     log.IsESM,
			Status:    string(log.Status),
		}
		if end, bounded := log.EndDate.Date(); bounded {
			formatted := end.Format("2006-01-02")
			entry.EndDate = &formatted
		}
		resp.Logs = append(resp.Logs, entry)
	}
	return resp, nil
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	skipDays := make([]int, 0, len(sh.SkipDays))
	for _, d := range sh.SkipDays {
		skipDays = append(skipDays, int(d))
	}
	return shift.ShiftResponse{
		ID:                  sh.ID,
		Name:                sh.Name,
		StartTime:           sh.StartTime.Format("15:04:05"),
		EndTime:             sh.EndTime.Format("15:04:05"),
		ComputationTime:     sh.ComputationTime.Format("15:04:05"),
		PresentWorkingHours: sh.PresentWorkingHours,
		PartialWorkingHours: sh.PartialWorkingHours,
		SkipDays:            skipDays,
		Status:              string(sh.Status),
		IsNight:             sh.IsNight(),
		CreatedAt:           sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           sh.UpdatedAt.Format(time.RFC3339),
	}
}

func toWeekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}
