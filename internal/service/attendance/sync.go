package attendance

import (
	"context"
	"fmt"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
)

const (
	presentFraction = 0.70
	halfDayFraction = 0.40
)

type syncer struct {
	attendanceRepo attendance.AttendanceRepository
}

// NewSyncer creates the time-log-to-ledger projector. Callers run it inside
// the same transaction as the time log save.
func NewSyncer(attendanceRepo attendance.AttendanceRepository) attendance.Syncer {
	return &syncer{attendanceRepo: attendanceRepo}
}

// SyncFromLog implements attendance.Syncer. The ledger status is derived from
// the actual shift length with percentage thresholds, deliberately unlike the
// log's own fixed-8h status.
func (s *syncer) SyncFromLog(ctx context.Context, log *timelog.TimeLog) error {
	att := attendance.Attendance{
		EmployeeID: log.EmployeeID,
		Date:       log.Date,
		TotalHours: log.NetWorkingHours,
		Overtime:   log.OvertimeHours,
		Status:     ledgerStatus(log),
	}

	if len(log.Sessions) > 0 {
		first := log.Sessions[0].CheckIn
		att.CheckIn = &first
		att.CheckOut = log.Sessions[len(log.Sessions)-1].CheckOut
	}

	if _, err := s.attendanceRepo.Upsert(ctx, att); err != nil {
		return fmt.Errorf("failed to sync attendance: %w", err)
	}

	return nil
}

func ledgerStatus(log *timelog.TimeLog) attendance.Status {
	// An employee mid-shift is never marked absent or half-day.
	if log.HasOpenSession() {
		return attendance.StatusPresent
	}

	shiftHours := 8.0
	if log.Shift != nil {
		shiftHours = log.Shift.DurationHours()
	}

	switch {
	case log.NetWorkingHours >= presentFraction*shiftHours:
		return attendance.StatusPresent
	case log.NetWorkingHours >= halfDayFraction*shiftHours:
		return attendance.StatusHalfDay
	default:
		return attendance.StatusAbsent
	}
}
