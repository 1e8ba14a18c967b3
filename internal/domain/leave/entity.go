package leave

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Leave is an approved-or-pending leave span, inclusive of both endpoints.
type Leave struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     Status
	CreatedAt  time.Time
}

// Covers reports whether day falls inside the leave span.
func (l *Leave) Covers(day time.Time) bool {
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}
