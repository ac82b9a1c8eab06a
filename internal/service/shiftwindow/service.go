package shiftwindow

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
)

// Service loads the three-day log snapshot around "now" and resolves the
// effective window from it. It is shared by the live scan endpoint and the
// batch computation engine.
type Service struct {
	shiftRepo shift.ShiftRepository
	logRepo   shift.ScheduleLogRepository
}

func NewService(shiftRepo shift.ShiftRepository, logRepo shift.ScheduleLogRepository) *Service {
	return &Service{shiftRepo: shiftRepo, logRepo: logRepo}
}

// Snapshot fetches the active logs covering yesterday, today and tomorrow
// relative to now, with their shift templates.
func (s *Service) Snapshot(ctx context.Context, employeeID string, organizationID string, now time.Time) (Snapshot, error) {
	today := shift.Day(now)
	days := []time.Time{today.AddDate(0, 0, -1), today, today.AddDate(0, 0, 1)}

	var logs [3]*shift.ShiftScheduleLog
	shiftIDs := make([]string, 0, 3)
	for i, d := range days {
		l, found, err := s.logRepo.GetActiveCovering(ctx, employeeID, d)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to load schedule log for %s: %w", d.Format("2006-01-02"), err)
		}
		if found {
			logs[i] = &l
			shiftIDs = append(shiftIDs, l.ShiftID)
		}
	}

	shifts, err := s.shiftRepo.GetByIDs(ctx, shiftIDs, organizationID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load shifts: %w", err)
	}

	var snap Snapshot
	slots := []**DayLog{&snap.Yesterday, &snap.Today, &snap.Tomorrow}
	for i, l := range logs {
		if l == nil {
			continue
		}
		sh, ok := shifts[l.ShiftID]
		if !ok {
			return Snapshot{}, shift.ErrShiftNotFound
		}
		*slots[i] = &DayLog{Log: *l, Shift: sh}
	}
	return snap, nil
}

// EffectiveWindow resolves the single effective window at now.
func (s *Service) EffectiveWindow(ctx context.Context, employeeID string, organizationID string, now time.Time) (Window, error) {
	snap, err := s.Snapshot(ctx, employeeID, organizationID, now)
	if err != nil {
		return Window{}, err
	}
	win, found := Resolve(snap, now)
	if !found {
		return Window{}, shift.ErrNoEffectiveWindow
	}
	return win, nil
}
