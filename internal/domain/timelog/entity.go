package timelog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
)

// Status is the fixed-standard status derived from net hours against an
// 8-hour day. The attendance ledger derives its own status from the shift
// duration; the two vocabularies are intentionally separate.
type Status string

const (
	StatusPresent       Status = "Present"
	StatusHalfDay       Status = "Half Day"
	StatusAbsent        Status = "Absent"
	StatusEarlyCheckout Status = "Early Checkout"
)

// Session is one check-in/check-out pair within a day. CheckOut is nil while
// the session is open.
type Session struct {
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
}

// TimeLog is the per-(employee, date) log of work sessions plus the derived
// metrics and status flags computed from them. Derived fields are rewritten
// by Recalculate on every mutation and are never set independently.
type TimeLog struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Sessions   []Session
	Shift      *shift.Resolved

	// Check-in flags
	ProperCheckIn bool
	LateLogin     bool
	LateReason    *string
	LateApproved  bool
	HasPermission bool

	// Check-out flags
	AutoLogout     bool
	EarlyLogout    bool
	ProperCheckOut bool
	LateLogout     bool

	// Derived
	GrossWorkingHours float64
	NetWorkingHours   float64
	OvertimeHours     float64
	AttendanceStatus  Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName *string
}

// LastSession returns a pointer into Sessions for the most recent entry, or
// nil when the log has none.
func (t *TimeLog) LastSession() *Session {
	if len(t.Sessions) == 0 {
		return nil
	}
	return &t.Sessions[len(t.Sessions)-1]
}

// HasOpenSession reports whether the last session is still missing a
// check-out. At most one session is ever open.
func (t *TimeLog) HasOpenSession() bool {
	last := t.LastSession()
	return last != nil && last.CheckOut == nil
}

// standardDayHours is the fixed overtime baseline, independent of the
// snapshotted shift length.
const standardDayHours = 8

// Recalculate recomputes session durations, gross/net/overtime hours and the
// attendance status from the current sessions and shift snapshot. Open
// sessions contribute zero until they are closed.
func (t *TimeLog) Recalculate() {
	grossMinutes := 0
	for i := range t.Sessions {
		s := &t.Sessions[i]
		if s.CheckOut == nil {
			s.DurationMinutes = 0
			continue
		}
		s.DurationMinutes = int(s.CheckOut.Sub(s.CheckIn).Minutes())
		grossMinutes += s.DurationMinutes
	}

	breakMinutes := 0
	if t.Shift != nil {
		breakMinutes = t.Shift.BreakMinutes
	}

	// The break is only deducted when there is room for it.
	netMinutes := grossMinutes
	if grossMinutes > breakMinutes {
		netMinutes = grossMinutes - breakMinutes
	}

	t.GrossWorkingHours = round2(float64(grossMinutes) / 60)
	t.NetWorkingHours = round2(float64(netMinutes) / 60)

	overtime := t.NetWorkingHours - standardDayHours
	if overtime < 0 {
		overtime = 0
	}
	t.OvertimeHours = round2(overtime)

	switch {
	case t.NetWorkingHours >= standardDayHours:
		t.AttendanceStatus = StatusPresent
	case t.NetWorkingHours >= 6:
		t.AttendanceStatus = StatusEarlyCheckout
	case t.NetWorkingHours > 0:
		t.AttendanceStatus = StatusHalfDay
	default:
		t.AttendanceStatus = StatusAbsent
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
