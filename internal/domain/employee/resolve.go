package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/attendly-hq/tna-backend-go/internal/pkg/validator"
)

// ResolveRef looks up an employee by any accepted identifier: the employee
// id itself, a linked user account id, or an email address.
func ResolveRef(ctx context.Context, repo EmployeeRepository, ref string) (Employee, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Employee{}, ErrInvalidEmployeeRef
	}

	if strings.Contains(ref, "@") {
		if !validator.IsValidEmail(ref) {
			return Employee{}, ErrInvalidEmployeeRef
		}
		return repo.GetByEmail(ctx, ref)
	}

	emp, err := repo.GetByID(ctx, ref)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, ErrEmployeeNotFound) {
		return Employee{}, err
	}

	return repo.GetByUserID(ctx, ref)
}
