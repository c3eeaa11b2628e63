package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
	"github.com/foodml/recipelab/internal/ports/outbound"
)

// MockRecipeRepository is a testify mock for the recipe repository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, userID, page)
	return recipeSlice(args.Get(0)), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) FindFavorites(ctx context.Context, userID uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, userID, page)
	return recipeSlice(args.Get(0)), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria, viewerID *uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, criteria, viewerID, page)
	return recipeSlice(args.Get(0)), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) FindTrending(ctx context.Context, minVerifications int, viewerID *uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, minVerifications, viewerID, page)
	return recipeSlice(args.Get(0)), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) UpdateStats(ctx context.Context, recipeID uuid.UUID, stats verification.Stats) error {
	args := m.Called(ctx, recipeID, stats)
	return args.Error(0)
}

func recipeSlice(v interface{}) []*recipe.Recipe {
	if v == nil {
		return nil
	}
	return v.([]*recipe.Recipe)
}

// MockUserRepository is a testify mock for the user repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockAIClient is a testify mock for the model provider
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockCacheRepository is a testify mock for the cache repository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
