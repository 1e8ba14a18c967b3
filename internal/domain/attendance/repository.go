package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for the daily ledger.
type AttendanceRepository interface {
	// Upsert creates or overwrites the record keyed by (employee, date).
	Upsert(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a ledger record by id.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// date, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListForEmployeeBetween retrieves an employee's records with date in
	// [from, to], ordered by date.
	ListForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// Update rewrites a record. Used for administrative overrides.
	Update(ctx context.Context, att Attendance) error

	// List retrieves ledger records with filters and pagination.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
