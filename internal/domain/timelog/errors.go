package timelog

import "errors"

// Time log domain errors
var (
	ErrNoActiveSession   = errors.New("no active session found to check out")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrTimeLogNotFound   = errors.New("time log not found")
)
