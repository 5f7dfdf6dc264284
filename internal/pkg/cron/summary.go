package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
)

// SummaryJobs keeps the persisted monthly attendance summaries fresh so
// payroll generation never reads a stale aggregate.
type SummaryJobs struct {
	timesheetSvc attendance.TimesheetService
}

func NewSummaryJobs(timesheetSvc attendance.TimesheetService) *SummaryJobs {
	return &SummaryJobs{timesheetSvc: timesheetSvc}
}

func (j *SummaryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_monthly_summaries", 1*time.Hour, j.RecomputeCurrentMonth)
}

// RecomputeCurrentMonth recomputes and persists the monthly summary for
// every employee with attendance rows in the current calendar month.
func (j *SummaryJobs) RecomputeCurrentMonth(ctx context.Context) error {
	month := time.Now().UTC().Format("2006-01")

	slog.Info("Cron: Starting monthly summary recompute", "month", month)

	if err := j.timesheetSvc.RecomputeMonth(ctx, month); err != nil {
		return err
	}

	slog.Info("Cron: Monthly summary recompute completed", "month", month)
	return nil
}
