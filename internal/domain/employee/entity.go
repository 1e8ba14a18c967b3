package employee

import (
	"time"
)

type Employee struct {
	ID        string
	UserID    *string
	ShiftID   *string
	FirstName string
	LastName  string
	Email     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// FullName joins first and last name for display.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
