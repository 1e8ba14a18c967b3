package response

import (
	"errors"
	"net/http"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/tna-backend-go/internal/domain/auth"
	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/regularisation"
	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
	"github.com/attendly-hq/tna-backend-go/internal/domain/user"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEmployeeRef):
		BadRequest(w, "Employee reference must be an id, linked user id, or email", nil)

	// Time log domain errors
	case errors.Is(err, timelog.ErrNoActiveSession):
		NotFound(w, "No active session found to check out")
	case errors.Is(err, timelog.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out")
	case errors.Is(err, timelog.ErrTimeLogNotFound):
		NotFound(w, "Time log not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Regularisation domain errors
	case errors.Is(err, regularisation.ErrRequestNotFound):
		NotFound(w, "Regularisation request not found")
	case errors.Is(err, regularisation.ErrAlreadyProcessed):
		Conflict(w, "Regularisation request already processed")
	case errors.Is(err, regularisation.ErrQuotaExceeded):
		TooManyRequests(w, "Monthly regularisation quota exceeded")
	case errors.Is(err, regularisation.ErrInvalidStatus):
		BadRequest(w, "Status must be Approved or Rejected", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privilege required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
