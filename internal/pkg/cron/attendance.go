package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
)

// AttendanceJobs drives the hourly computation sweep. Each tick walks every
// organization and runs the shifts whose computation hour has arrived in that
// organization's time zone; the engine's history guard makes repeat ticks
// within the same hour no-ops.
type AttendanceJobs struct {
	orgRepo        organization.OrganizationRepository
	computationSvc attendance.ComputationService
}

func NewAttendanceJobs(
	orgRepo organization.OrganizationRepository,
	computationSvc attendance.ComputationService,
) *AttendanceJobs {
	return &AttendanceJobs{
		orgRepo:        orgRepo,
		computationSvc: computationSvc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("attendance_computation_sweep", 1*time.Hour, j.ComputationSweep)
}

func (j *AttendanceJobs) ComputationSweep(ctx context.Context) error {
	slog.Info("Cron: Starting attendance computation sweep")

	orgIDs, err := j.orgRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	now := time.Now().UTC()
	failed := 0
	for _, orgID := range orgIDs {
		if err := j.computationSvc.RunDueComputations(ctx, orgID, now); err != nil {
			slog.Error("Cron: Computation sweep failed for organization",
				"organization_id", orgID,
				"error", err)
			failed++
		}
	}

	slog.Info("Cron: Attendance computation sweep finished",
		"organization_count", len(orgIDs),
		"failed", failed)
	return nil
}
