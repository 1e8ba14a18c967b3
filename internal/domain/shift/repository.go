package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// GetByID retrieves a shift definition by id.
	GetByID(ctx context.Context, id string) (Shift, error)
}

// ScheduleRepository defines data access for roster entries.
type ScheduleRepository interface {
	// ListForEmployeeBetween retrieves roster entries for an employee whose
	// stored date falls in [from, to).
	ListForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Schedule, error)

	// GetForEmployeeInRange retrieves a single roster entry with date in
	// [from, to), or nil when none exists.
	GetForEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (*Schedule, error)
}
