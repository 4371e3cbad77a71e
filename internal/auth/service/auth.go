package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"travelog/internal/auth/repository"
	"travelog/internal/auth/token"
	"travelog/pkg/config"
	apperrors "travelog/pkg/errors"
	"travelog/pkg/model"
)

type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Service
	cfg    *config.Config
}

func NewAuthService(users repository.UserRepository, tokens *token.Service, cfg *config.Config) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
	}
}

// Login checks the credentials against the user repository and issues a
// bearer token on an exact match. Unknown user and wrong password are
// indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, creds model.Credentials) (string, error) {
	user, err := s.users.FindByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.Unauthorized("Invalid username or password")
		}
		s.cfg.Log.Error("Failed to look up user", "username", creds.Username, "error", err)
		return "", apperrors.Internal("Failed to authenticate", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(creds.Password)) != 1 {
		return "", apperrors.Unauthorized("Invalid username or password")
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "username", user.Username, "error", err)
		return "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "username", user.Username, "role", user.Role)
	return signed, nil
}
