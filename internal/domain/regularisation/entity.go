package regularisation

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// MonthlyQuota bounds how many correction requests an employee may file per
// calendar month, counted across all statuses.
const MonthlyQuota = 3

// Request is one retroactive correction attempt for a day's recorded
// check-in/check-out times. It transitions exactly once, from Pending to
// Approved or Rejected.
type Request struct {
	ID               string
	EmployeeID       string
	TimeLogID        *string
	Date             time.Time
	OriginalCheckIn  *time.Time
	OriginalCheckOut *time.Time
	NewCheckIn       time.Time
	NewCheckOut      time.Time
	Reason           string
	Status           Status
	AdminComment     *string
	ActionBy         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO / Join
	EmployeeName *string
}

// IsProcessed reports whether the request has reached a terminal state.
func (r *Request) IsProcessed() bool {
	return r.Status != StatusPending
}
