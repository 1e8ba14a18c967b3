package timelog

import (
	"context"
	"time"
)

// TimeLogRepository defines data access methods for time logs. One log
// exists per (employee, date).
type TimeLogRepository interface {
	// Create creates a new time log.
	Create(ctx context.Context, log TimeLog) (TimeLog, error)

	// Update rewrites an existing time log, sessions and derived fields
	// included.
	Update(ctx context.Context, log TimeLog) error

	// GetByID retrieves a time log by id.
	GetByID(ctx context.Context, id string) (TimeLog, error)

	// GetByEmployeeAndDate retrieves the log for one employee on one
	// calendar date, or nil when none exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*TimeLog, error)

	// GetLatestSince retrieves the employee's most recent log dated at or
	// after since. Used by check-out to find the active day within 48 hours.
	GetLatestSince(ctx context.Context, employeeID string, since time.Time) (*TimeLog, error)

	// ListOpenBefore retrieves the employee's logs dated strictly before the
	// given day that still have an open session.
	ListOpenBefore(ctx context.Context, employeeID string, day time.Time) ([]TimeLog, error)

	// ListAllOpenBefore is the cross-employee variant used by the scheduled
	// sweep.
	ListAllOpenBefore(ctx context.Context, day time.Time) ([]TimeLog, error)

	// List retrieves time logs with filters and pagination.
	List(ctx context.Context, filter TimeLogFilter, employeeID *string) ([]TimeLog, int64, error)
}
