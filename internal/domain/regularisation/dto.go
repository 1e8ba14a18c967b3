package regularisation

import (
	"strings"

	"github.com/attendly-hq/tna-backend-go/internal/pkg/validator"
)

// SubmitRequest files a correction for one day. NewCheckIn/NewCheckOut are
// wall-clock times ("09:00 AM" or "18:30") combined with Date; a check-out
// at or before the check-in rolls over to the next day.
type SubmitRequest struct {
	EmployeeRef string `json:"employee_ref"`
	Date        string `json:"date"` // YYYY-MM-DD
	Reason      string `json:"reason"`
	NewCheckIn  string `json:"new_check_in"`
	NewCheckOut string `json:"new_check_out"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeRef) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ref",
			Message: "employee_ref is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if _, valid := validator.IsValidClockTime(r.NewCheckIn); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "new_check_in",
			Message: "new_check_in must be a wall-clock time like 09:00 AM or 18:30",
		})
	}

	if _, valid := validator.IsValidClockTime(r.NewCheckOut); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "new_check_out",
			Message: "new_check_out must be a wall-clock time like 09:00 AM or 18:30",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	ID           string  `json:"-"`
	Status       string  `json:"status"` // Approved, Rejected
	AdminComment *string `json:"admin_comment,omitempty"`
	ActorUserID  string  `json:"-"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Approved, Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		valid := []string{"pending", "approved", "rejected"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: Pending, Approved, Rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	TimeLogID        *string `json:"time_log_id,omitempty"`
	Date             string  `json:"date"`
	OriginalCheckIn  *string `json:"original_check_in,omitempty"`
	OriginalCheckOut *string `json:"original_check_out,omitempty"`
	NewCheckIn       string  `json:"new_check_in"`
	NewCheckOut      string  `json:"new_check_out"`
	Reason           string  `json:"reason"`
	Status           Status  `json:"status"`
	AdminComment     *string `json:"admin_comment,omitempty"`
	ActionBy         *string `json:"action_by,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}
