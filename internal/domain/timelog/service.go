package timelog

import (
	"context"
	"time"
)

// TimeLogService is the session tracker: it owns every mutation of a time
// log and guarantees that derived metrics are recomputed and the attendance
// ledger re-synced on each one.
type TimeLogService interface {
	// CheckIn opens a new session for today, closing any session left open
	// from a previous day (or earlier today) first.
	CheckIn(ctx context.Context, req CheckInRequest) (TimeLogResponse, error)

	// CheckOut closes the employee's open session.
	CheckOut(ctx context.Context, req CheckOutRequest) (TimeLogResponse, error)

	// GetLogs retrieves time logs with filters.
	GetLogs(ctx context.Context, filter TimeLogFilter) (ListTimeLogsResponse, error)

	// ReplaceSessions overwrites a day's entire session history with a
	// single corrected session and re-runs the metrics/sync chain. Used by
	// the regularisation workflow on approval. Returns false when no log
	// could be located; prior sessions are discarded, not archived.
	ReplaceSessions(ctx context.Context, logID *string, employeeID string, date time.Time, checkIn, checkOut time.Time) (bool, error)

	// CloseStaleLogs closes open sessions on logs dated before today for
	// every employee. Idempotent; invoked by the scheduler.
	CloseStaleLogs(ctx context.Context) error
}
