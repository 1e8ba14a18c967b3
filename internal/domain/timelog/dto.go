package timelog

import (
	"strings"

	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/validator"
)

// CheckInRequest opens (or reopens) the caller's work day. EmployeeRef
// accepts an employee id, a linked user id, or an email; handlers default it
// to the caller's own employee id from the token claims.
type CheckInRequest struct {
	EmployeeRef   string  `json:"employee_ref"`
	LateReason    *string `json:"late_reason,omitempty"`
	HasPermission bool    `json:"has_permission"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeRef) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ref",
			Message: "employee_ref is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeRef string `json:"employee_ref"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeRef) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ref",
			Message: "employee_ref is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeLogFilter struct {
	EmployeeRef *string `json:"employee_ref,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *TimeLogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	CheckIn         string  `json:"check_in"`
	CheckOut        *string `json:"check_out,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
}

type TimeLogResponse struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employee_id"`
	EmployeeName *string           `json:"employee_name,omitempty"`
	Date         string            `json:"date"`
	Sessions     []SessionResponse `json:"sessions"`
	Shift        *shift.Resolved   `json:"shift,omitempty"`

	ProperCheckIn bool    `json:"proper_check_in"`
	LateLogin     bool    `json:"late_login"`
	LateReason    *string `json:"late_reason,omitempty"`
	LateApproved  bool    `json:"late_approved"`
	HasPermission bool    `json:"has_permission"`

	AutoLogout     bool `json:"auto_logout"`
	EarlyLogout    bool `json:"early_logout"`
	ProperCheckOut bool `json:"proper_check_out"`
	LateLogout     bool `json:"late_logout"`

	GrossWorkingHours float64 `json:"gross_working_hours"`
	NetWorkingHours   float64 `json:"net_working_hours"`
	OvertimeHours     float64 `json:"overtime_hours"`
	AttendanceStatus  Status  `json:"attendance_status"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListTimeLogsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	TimeLogs   []TimeLogResponse `json:"time_logs"`
}
