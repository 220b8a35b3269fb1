package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-management-api/internal/api/metrics"
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

// AuthService implements registration and authentication.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new user with role "user" and returns a token for it.
// The uniqueness pre-check and the insert are two separate store calls; the
// repository additionally maps duplicate-key errors so a unique index on
// email closes the race window when provisioned.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	if username == "" || email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(created.Email, map[string]any{"role": created.Role})
	if err != nil {
		return "", err
	}

	metrics.RegistrationsTotal.Inc()
	metrics.TokensIssuedTotal.Inc()
	s.logger.Info().Str("email", created.Email).Msg("user registered")

	return token, nil
}

// Authenticate verifies credentials and returns a token. Nothing is written.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email, map[string]any{"role": user.Role})
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	s.logger.Info().Str("email", user.Email).Msg("user authenticated")

	return token, nil
}
