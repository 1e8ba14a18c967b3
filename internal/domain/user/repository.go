package user

import "context"

type UserRepository interface {
	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email, password hash included.
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListByRole retrieves all users holding the given role. Used to fan out
	// notifications to administrators.
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
