// Package user implements registration, login and profile lookup.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/infrastructure/security"
	"github.com/foodml/recipelab/internal/ports/inbound"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

const minPasswordLength = 8

// Service implements the inbound UserService interface.
type Service struct {
	repo   outbound.UserRepository
	auth   *security.AuthService
	logger *zap.Logger
}

// NewService creates a new user service
func NewService(repo outbound.UserRepository, auth *security.AuthService, logger *zap.Logger) inbound.UserService {
	return &Service{
		repo:   repo,
		auth:   auth,
		logger: logger,
	}
}

// Register creates an account and returns it with a signed token.
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.AuthResult, error) {
	if len(cmd.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	email := user.Normalize(cmd.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewEmailAlreadyExistsError(email)
	}

	hash, err := s.auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password").WithCause(err)
	}

	u, err := user.New(email, hash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID.String()))
	return &inbound.AuthResult{User: u, Token: token}, nil
}

// Login verifies credentials and returns the user with a fresh token.
// A missing user and a wrong password return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*inbound.AuthResult, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeUserNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if !s.auth.CheckPassword(password, u.PasswordHash) {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	token, err := s.auth.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID.String()))
	return &inbound.AuthResult{User: u, Token: token}, nil
}

// GetByID returns a user's profile.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}
