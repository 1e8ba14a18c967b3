package http

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly-hq/tna-backend-go/internal/domain/user"
)

func claimString(ctx context.Context, key string) (string, bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false
	}
	value, ok := claims[key].(string)
	return value, ok && value != ""
}

// callerEmployeeID returns the employee linked to the authenticated user.
func callerEmployeeID(ctx context.Context) (string, bool) {
	return claimString(ctx, "employee_id")
}

// callerUserID returns the authenticated user's id.
func callerUserID(ctx context.Context) (string, bool) {
	return claimString(ctx, "user_id")
}

// callerIsAdmin reports whether the caller holds the administrative role.
func callerIsAdmin(ctx context.Context) bool {
	role, ok := claimString(ctx, "role")
	return ok && user.Role(role) == user.RoleAdmin
}
