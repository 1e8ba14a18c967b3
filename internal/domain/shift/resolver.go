package shift

import (
	"context"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
)

// Resolver determines the effective shift policy for an employee on a
// calendar day: roster entry first, then the employee's default shift.
// A nil result with nil error means no policy applies to that day.
type Resolver interface {
	Resolve(ctx context.Context, emp employee.Employee, date time.Time) (*Resolved, error)
}
