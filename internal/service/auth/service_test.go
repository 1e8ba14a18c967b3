package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendly-hq/tna-backend-go/internal/domain/auth"
	"github.com/attendly-hq/tna-backend-go/internal/domain/user"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) auth.AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	employeeID := "emp-1"

	repo := &fakeUserRepo{users: []user.User{
		{ID: "user-1", Email: "ravi@attendly.dev", Role: user.RoleEmployee, PasswordHash: &hashStr, EmployeeID: &employeeID},
		{ID: "user-2", Email: "sso-only@attendly.dev", Role: user.RoleEmployee},
	}}
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "15m"))
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ravi@attendly.dev",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, int64(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ravi@attendly.dev",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@attendly.dev",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_NoPasswordOnAccount(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sso-only@attendly.dev",
		Password: "anything",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_ValidatesInput(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "", Password: ""})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
