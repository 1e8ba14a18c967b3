package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
)

// TimeLogJobs owns the scheduled maintenance of time logs. The sweep is the
// safety net behind the per-check-in cleanup: it catches employees who never
// check in again after leaving a session open.
type TimeLogJobs struct {
	timeLogService timelog.TimeLogService
}

func NewTimeLogJobs(timeLogService timelog.TimeLogService) *TimeLogJobs {
	return &TimeLogJobs{timeLogService: timeLogService}
}

func (j *TimeLogJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_sessions", 1*time.Hour, j.CloseStaleSessions)
}

// CloseStaleSessions closes every open session on logs dated before today.
// Idempotent, so the hourly cadence is harmless.
func (j *TimeLogJobs) CloseStaleSessions(ctx context.Context) error {
	slog.Info("Cron: Starting stale session sweep")

	if err := j.timeLogService.CloseStaleLogs(ctx); err != nil {
		return err
	}

	slog.Info("Cron: Stale session sweep completed")
	return nil
}
