package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidEmployeeRef = errors.New("employee reference must be an id, linked user id, or email")
)
