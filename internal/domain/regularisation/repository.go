package regularisation

import (
	"context"
	"time"
)

// RequestRepository defines data access methods for regularisation requests.
type RequestRepository interface {
	// Create creates a new request.
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID retrieves a request by id.
	GetByID(ctx context.Context, id string) (Request, error)

	// Update rewrites a request after a decision.
	Update(ctx context.Context, req Request) error

	// CountForEmployeeBetween counts an employee's requests, any status,
	// with date in [from, to). Drives the monthly quota check.
	CountForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error)

	// List retrieves requests with filters and pagination.
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
}
