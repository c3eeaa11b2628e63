package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. A unique-index violation on email is
// surfaced as a conflict.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.db.WithContext(ctx).Create(UserToModel(u)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return apperrors.NewEmailAlreadyExistsError(u.Email)
		}
		return apperrors.NewDatabaseError("create user", err)
	}
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUserNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}

	return ModelToUser(&model), nil
}

// FindByEmail finds a user by normalized email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).First(&model, "email = ?", user.Normalize(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUserNotFoundError(email)
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}

	return ModelToUser(&model), nil
}

// ExistsByEmail reports whether a user with the email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ?", user.Normalize(email)).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewDatabaseError("check email", err)
	}
	return count > 0, nil
}

// isUniqueViolation matches driver-level unique constraint errors for
// the sqlite and postgres backends.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
