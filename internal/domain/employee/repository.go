package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	// GetByID retrieves an employee by primary id.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUserID retrieves an employee by its linked user account id.
	GetByUserID(ctx context.Context, userID string) (Employee, error)

	// GetByEmail retrieves an employee by email.
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// ListActive retrieves all active employees. Used by the stale-session
	// sweep job.
	ListActive(ctx context.Context) ([]Employee, error)
}
