package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// ListApprovedBetween retrieves an employee's approved leaves whose span
	// overlaps [from, to].
	ListApprovedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Leave, error)
}
