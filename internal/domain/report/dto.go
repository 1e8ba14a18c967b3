package report

import (
	"github.com/attendly-hq/tna-backend-go/internal/pkg/validator"
)

type MonthlySummaryRequest struct {
	EmployeeRef string `json:"employee_ref"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeRef) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ref",
			Message: "employee_ref is required",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlySummary is the payroll-facing classification of a date range.
// LopDays is the loss-of-pay day equivalent: unauthorized absences plus half
// days at 0.5 plus shortfall hours against the 8-hour day.
type MonthlySummary struct {
	EmployeeID    string  `json:"employee_id"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	PresentDays   int     `json:"present_days"`
	AbsentDays    int     `json:"absent_days"`
	HalfDays      int     `json:"half_days"`
	WeekendCount  int     `json:"weekend_count"`
	HolidayCount  int     `json:"holiday_count"`
	LeaveCount    int     `json:"leave_count"`
	OvertimeHours float64 `json:"overtime_hours"`
	MissingHours  float64 `json:"missing_hours"`
	LopDays       float64 `json:"lop_days"`
}
