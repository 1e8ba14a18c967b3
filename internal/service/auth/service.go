package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/attendly-hq/tna-backend-go/internal/domain/auth"
	"github.com/attendly-hq/tna-backend-go/internal/domain/user"
	"github.com/attendly-hq/tna-backend-go/internal/pkg/jwt"
)

type service struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

// NewAuthService creates the login flow backing the API's bearer tokens.
func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &service{userRepo: userRepo, jwtService: jwtService}
}

// Login implements auth.AuthService. Unknown emails and wrong passwords both
// come back as ErrInvalidCredentials so the response does not leak which
// accounts exist.
func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}
