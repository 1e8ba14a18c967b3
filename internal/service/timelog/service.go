package timelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/clock"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/database"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/lock"
)

const (
	// staleDefaultSession assumes an employee who never checked out worked a
	// standard day plus commute slack.
	staleDefaultSession = 9 * time.Hour

	// staleSessionCap bounds an auto-closed session once more than the cap
	// has elapsed since check-in.
	staleSessionCap = 12 * time.Hour

	// checkOutWindow is how far back check-out searches for the active log.
	checkOutWindow = 48 * time.Hour
)

type service struct {
	db           database.Transactor
	timeLogRepo  timelog.TimeLogRepository
	employeeRepo employee.EmployeeRepository
	resolver     shift.Resolver
	syncer       attendance.Syncer
	locks        *lock.KeyedMutex
	clock        clock.Clock
	logger       *slog.Logger
}

// NewTimeLogService creates the session tracker. Every mutation recomputes
// derived metrics and re-syncs the attendance ledger inside one transaction.
func NewTimeLogService(
	db database.Transactor,
	timeLogRepo timelog.TimeLogRepository,
	employeeRepo employee.EmployeeRepository,
	resolver shift.Resolver,
	syncer attendance.Syncer,
	locks *lock.KeyedMutex,
	clk clock.Clock,
	logger *slog.Logger,
) timelog.TimeLogService {
	return &service{
		db:           db,
		timeLogRepo:  timeLogRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		syncer:       syncer,
		locks:        locks,
		clock:        clk,
		logger:       logger,
	}
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lockKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// CheckIn implements timelog.TimeLogService.
func (s *service) CheckIn(ctx context.Context, req timelog.CheckInRequest) (timelog.TimeLogResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	emp, err := employee.ResolveRef(ctx, s.employeeRepo, req.EmployeeRef)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	now := s.clock.Now()
	today := dateOf(now)

	unlock := s.locks.Lock(lockKey(emp.ID, today))
	defer unlock()

	s.closeStaleForEmployee(ctx, emp.ID, today, now)

	resolved, err := s.resolver.Resolve(ctx, emp, today)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	existing, err := s.timeLogRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	var log timelog.TimeLog
	isNew := existing == nil
	if isNew {
		log = timelog.TimeLog{
			EmployeeID: emp.ID,
			Date:       today,
			Shift:      resolved,
			Sessions:   []timelog.Session{{CheckIn: now}},
		}
		applyCheckInFlags(&log, now, req.LateReason, req.HasPermission)
	} else {
		log = *existing
		// A repeated check-in implicitly checks out the previous session.
		if last := log.LastSession(); last != nil && last.CheckOut == nil {
			checkOut := now
			last.CheckOut = &checkOut
			log.AutoLogout = true
		}
		log.Sessions = append(log.Sessions, timelog.Session{CheckIn: now})
	}

	if err := s.saveAndSync(ctx, &log, isNew); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	return toResponse(log), nil
}

// CheckOut implements timelog.TimeLogService.
func (s *service) CheckOut(ctx context.Context, req timelog.CheckOutRequest) (timelog.TimeLogResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	emp, err := employee.ResolveRef(ctx, s.employeeRepo, req.EmployeeRef)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	// The active log is today's or yesterday's, never older.
	now := s.clock.Now()
	since := dateOf(now.Add(-checkOutWindow / 2))

	located, err := s.timeLogRepo.GetLatestSince(ctx, emp.ID, since)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}
	if located == nil {
		return timelog.TimeLogResponse{}, timelog.ErrNoActiveSession
	}

	unlock := s.locks.Lock(lockKey(emp.ID, dateOf(located.Date)))
	defer unlock()

	// Re-read under the lock; another call may have closed the session.
	log, err := s.timeLogRepo.GetByID(ctx, located.ID)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}

	last := log.LastSession()
	if last == nil {
		return timelog.TimeLogResponse{}, timelog.ErrNoActiveSession
	}
	if last.CheckOut != nil {
		return timelog.TimeLogResponse{}, timelog.ErrAlreadyCheckedOut
	}

	checkOut := now
	last.CheckOut = &checkOut

	// Re-resolve the shift: a roster added after check-in must retroactively
	// correct both the snapshot and the lateness flag.
	resolved, err := s.resolver.Resolve(ctx, emp, log.Date)
	if err != nil {
		return timelog.TimeLogResponse{}, err
	}
	log.Shift = resolved
	applyCheckInFlags(&log, log.Sessions[0].CheckIn, log.LateReason, log.HasPermission)
	applyCheckOutFlags(&log, now)

	if err := s.saveAndSync(ctx, &log, false); err != nil {
		return timelog.TimeLogResponse{}, err
	}

	return toResponse(log), nil
}

// GetLogs implements timelog.TimeLogService.
func (s *service) GetLogs(ctx context.Context, filter timelog.TimeLogFilter) (timelog.ListTimeLogsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timelog.ListTimeLogsResponse{}, err
	}

	var employeeID *string
	if filter.EmployeeRef != nil && *filter.EmployeeRef != "" {
		emp, err := employee.ResolveRef(ctx, s.employeeRepo, *filter.EmployeeRef)
		if err != nil {
			return timelog.ListTimeLogsResponse{}, err
		}
		employeeID = &emp.ID
	}

	logs, total, err := s.timeLogRepo.List(ctx, filter, employeeID)
	if err != nil {
		return timelog.ListTimeLogsResponse{}, err
	}

	responses := make([]timelog.TimeLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, toResponse(log))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return timelog.ListTimeLogsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		TimeLogs:   responses,
	}, nil
}

// ReplaceSessions implements timelog.TimeLogService.
func (s *service) ReplaceSessions(ctx context.Context, logID *string, employeeID string, date time.Time, checkIn, checkOut time.Time) (bool, error) {
	day := dateOf(date)

	unlock := s.locks.Lock(lockKey(employeeID, day))
	defer unlock()

	var log *timelog.TimeLog
	if logID != nil && *logID != "" {
		found, err := s.timeLogRepo.GetByID(ctx, *logID)
		if err != nil {
			if errors.Is(err, timelog.ErrTimeLogNotFound) {
				return false, nil
			}
			return false, err
		}
		log = &found
	} else {
		found, err := s.timeLogRepo.GetByEmployeeAndDate(ctx, employeeID, day)
		if err != nil {
			return false, err
		}
		log = found
	}
	if log == nil {
		return false, nil
	}

	out := checkOut
	log.Sessions = []timelog.Session{{CheckIn: checkIn, CheckOut: &out}}

	if err := s.saveAndSync(ctx, log, false); err != nil {
		return false, err
	}

	return true, nil
}

// CloseStaleLogs implements timelog.TimeLogService.
func (s *service) CloseStaleLogs(ctx context.Context) error {
	now := s.clock.Now()
	today := dateOf(now)

	logs, err := s.timeLogRepo.ListAllOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list stale time logs: %w", err)
	}

	for _, log := range logs {
		s.closeStaleLog(ctx, log.ID, log.EmployeeID, log.Date, now)
	}

	return nil
}

// closeStaleForEmployee closes this employee's open sessions from previous
// days. A failure on one log is logged and does not abort the rest.
func (s *service) closeStaleForEmployee(ctx context.Context, employeeID string, today, now time.Time) {
	logs, err := s.timeLogRepo.ListOpenBefore(ctx, employeeID, today)
	if err != nil {
		s.logger.Warn("stale session lookup failed",
			slog.String("employee_id", employeeID),
			slog.Any("error", err))
		return
	}

	for _, log := range logs {
		s.closeStaleLog(ctx, log.ID, log.EmployeeID, log.Date, now)
	}
}

// closeStaleLog re-reads one log under its own lock and closes its open
// session if it still has one. Idempotent.
func (s *service) closeStaleLog(ctx context.Context, logID, employeeID string, date, now time.Time) {
	unlock := s.locks.Lock(lockKey(employeeID, dateOf(date)))
	defer unlock()

	log, err := s.timeLogRepo.GetByID(ctx, logID)
	if err != nil {
		s.logger.Warn("stale session fetch failed",
			slog.String("time_log_id", logID),
			slog.Any("error", err))
		return
	}

	last := log.LastSession()
	if last == nil || last.CheckOut != nil {
		return
	}

	closeAt := staleCloseTime(last.CheckIn, now)
	last.CheckOut = &closeAt
	log.AutoLogout = true

	if err := s.saveAndSync(ctx, &log, false); err != nil {
		s.logger.Warn("stale session close failed",
			slog.String("time_log_id", logID),
			slog.Any("error", err))
	}
}

// staleCloseTime picks the synthetic check-out for an abandoned session: a
// standard 9-hour day, stretched to the 12-hour cap once more than 12 hours
// have passed, and never in the future.
func staleCloseTime(checkIn, now time.Time) time.Time {
	closeAt := checkIn.Add(staleDefaultSession)
	if now.Sub(checkIn) > staleSessionCap {
		closeAt = checkIn.Add(staleSessionCap)
	}
	if closeAt.After(now) {
		closeAt = now
	}
	return closeAt
}

// applyCheckInFlags sets properCheckIn/lateLogin by comparing checkIn to the
// snapshotted shift start plus grace. With no shift policy every check-in is
// proper.
func applyCheckInFlags(log *timelog.TimeLog, checkIn time.Time, lateReason *string, hasPermission bool) {
	log.ProperCheckIn = false
	log.LateLogin = false
	// A re-evaluation that lands on proper must not leave a stale late
	// excuse behind.
	log.LateReason = nil
	log.HasPermission = false

	if log.Shift == nil {
		log.ProperCheckIn = true
		return
	}

	start, ok := log.Shift.StartOn(log.Date)
	if !ok {
		log.ProperCheckIn = true
		return
	}

	deadline := start.Add(time.Duration(log.Shift.GraceMinutes) * time.Minute)
	if checkIn.After(deadline) {
		log.LateLogin = true
		log.LateReason = lateReason
		log.HasPermission = hasPermission
		return
	}
	log.ProperCheckIn = true
}

// applyCheckOutFlags sets exactly one of earlyLogout/properCheckOut/
// lateLogout when a shift end is known, none otherwise. Early means more
// than an hour before shift end; late means past a 10-minute window after
// it.
func applyCheckOutFlags(log *timelog.TimeLog, checkOut time.Time) {
	log.EarlyLogout = false
	log.ProperCheckOut = false
	log.LateLogout = false

	if log.Shift == nil {
		return
	}
	end, ok := log.Shift.EndOn(log.Date)
	if !ok {
		return
	}

	switch {
	case checkOut.Before(end.Add(-time.Hour)):
		log.EarlyLogout = true
	case checkOut.After(end.Add(10 * time.Minute)):
		log.LateLogout = true
	default:
		log.ProperCheckOut = true
	}
}

// saveAndSync recomputes derived fields, persists the log and projects it
// into the attendance ledger as one transaction.
func (s *service) saveAndSync(ctx context.Context, log *timelog.TimeLog, create bool) error {
	log.Recalculate()

	return s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if create {
			created, err := s.timeLogRepo.Create(ctx, *log)
			if err != nil {
				return err
			}
			*log = created
		} else {
			if err := s.timeLogRepo.Update(ctx, *log); err != nil {
				return err
			}
		}
		return s.syncer.SyncFromLog(ctx, log)
	})
}

func toResponse(log timelog.TimeLog) timelog.TimeLogResponse {
	sessions := make([]timelog.SessionResponse, 0, len(log.Sessions))
	for _, sess := range log.Sessions {
		resp := timelog.SessionResponse{
			CheckIn:         sess.CheckIn.Format(time.RFC3339),
			DurationMinutes: sess.DurationMinutes,
		}
		if sess.CheckOut != nil {
			out := sess.CheckOut.Format(time.RFC3339)
			resp.CheckOut = &out
		}
		sessions = append(sessions, resp)
	}

	return timelog.TimeLogResponse{
		ID:           log.ID,
		EmployeeID:   log.EmployeeID,
		EmployeeName: log.EmployeeName,
		Date:         log.Date.Format("2006-01-02"),
		Sessions:     sessions,
		Shift:        log.Shift,

		ProperCheckIn: log.ProperCheckIn,
		LateLogin:     log.LateLogin,
		LateReason:    log.LateReason,
		LateApproved:  log.LateApproved,
		HasPermission: log.HasPermission,

		AutoLogout:     log.AutoLogout,
		EarlyLogout:    log.EarlyLogout,
		ProperCheckOut: log.ProperCheckOut,
		LateLogout:     log.LateLogout,

		GrossWorkingHours: log.GrossWorkingHours,
		NetWorkingHours:   log.NetWorkingHours,
		OvertimeHours:     log.OvertimeHours,
		AttendanceStatus:  log.AttendanceStatus,

		CreatedAt: log.CreatedAt.Format(time.RFC3339),
		UpdatedAt: log.UpdatedAt.Format(time.RFC3339),
	}
}
