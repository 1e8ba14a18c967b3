package attendance

import (
	"time"
)

// Status is the ledger vocabulary. It is derived from the shift duration by
// the synchronizer, not from the time log's fixed-8h status; the two
// derivations are deliberately separate.
type Status string

const (
	StatusPresent       Status = "Present"
	StatusAbsent        Status = "Absent"
	StatusLate          Status = "Late"
	StatusHalfDay       Status = "Half-day"
	StatusOnLeave       Status = "On Leave"
	StatusEarlyCheckout Status = "Early Checkout"
)

// Attendance is the authoritative daily ledger record consumed by reporting
// and payroll, one per (employee, date). The synchronizer overwrites it on
// every time log save; administrative edits coexist with that, last writer
// wins.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ShiftID    *string
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours float64
	Overtime   float64
	Status     Status
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}
