package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - approves corrections
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if the user holds the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
