package regularisation

import "errors"

var (
	ErrRequestNotFound  = errors.New("regularisation request not found")
	ErrAlreadyProcessed = errors.New("regularisation request has already been approved or rejected")
	ErrQuotaExceeded    = errors.New("monthly regularisation quota exceeded")
	ErrInvalidStatus    = errors.New("status must be Approved or Rejected")
)
