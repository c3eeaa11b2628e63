// Package inbound defines the driving-side contracts the HTTP layer
// calls into, along with their command and result types.
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
)

// Pagination is the validated page request shared by all list
// operations. Page starts at 1; PageSize is capped at 100.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset converts the page request to a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// RecipeList is a page of recipes with the total match count.
type RecipeList struct {
	Recipes  []*recipe.Recipe
	Total    int64
	Page     int
	PageSize int
}

// GenerateRecipeCommand asks the AI service to write and store a
// recipe for the authenticated user.
type GenerateRecipeCommand struct {
	UserID      uuid.UUID
	Prompt      string
	Servings    int
	CuisineType string
	DietaryTags []string
}

// SearchRecipesQuery filters the catalog.
type SearchRecipesQuery struct {
	Query      string
	Cuisine    string
	Difficulty string
	MinRating  float64
	Pagination Pagination
}

// RecipeService covers generation, retrieval, favorites and
// discovery.
type RecipeService interface {
	Generate(ctx context.Context, cmd GenerateRecipeCommand) (*recipe.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error)
	ListMine(ctx context.Context, userID uuid.UUID, p Pagination) (*RecipeList, error)
	ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID, p Pagination) (*RecipeList, error)
	Search(ctx context.Context, q SearchRecipesQuery, viewerID *uuid.UUID) (*RecipeList, error)
	Trending(ctx context.Context, minVerifications int, viewerID *uuid.UUID, p Pagination) (*RecipeList, error)
}

// VerifyRecipeCommand records a cook-through of a recipe.
type VerifyRecipeCommand struct {
	RecipeID         uuid.UUID
	UserID           uuid.UUID
	Rating           float64
	Notes            string
	WouldMake        bool
	ExecutionMinutes *int
}

// VerificationList is a page of verifications plus the recipe's
// current rollup.
type VerificationList struct {
	Verifications []*verification.Verification
	Total         int64
	AvgRating     float64
	// SuccessRate is the would-make-again percentage, one decimal.
	SuccessRate float64
}

// VerificationService records and lists cook-through feedback.
type VerificationService interface {
	Verify(ctx context.Context, cmd VerifyRecipeCommand) (*verification.Verification, verification.Stats, error)
	ListForRecipe(ctx context.Context, recipeID uuid.UUID, p Pagination) (*VerificationList, error)
	ListMine(ctx context.Context, userID uuid.UUID, p Pagination) ([]*verification.Verification, int64, error)
}

// CreateCollectionCommand creates a named recipe grouping.
type CreateCollectionCommand struct {
	UserID      uuid.UUID
	Name        string
	Description string
	Color       string
}

// UpdateCollectionCommand edits a collection. Nil fields are left
// unchanged.
type UpdateCollectionCommand struct {
	CollectionID uuid.UUID
	UserID       uuid.UUID
	Name         *string
	Description  *string
	Color        *string
}

// CollectionService manages collections. All operations enforce that
// the caller owns the collection.
type CollectionService interface {
	Create(ctx context.Context, cmd CreateCollectionCommand) (*collection.Collection, error)
	List(ctx context.Context, userID uuid.UUID, p Pagination) ([]*collection.Collection, int64, error)
	Get(ctx context.Context, collectionID, userID uuid.UUID) (*collection.Collection, error)
	Update(ctx context.Context, cmd UpdateCollectionCommand) (*collection.Collection, error)
	Delete(ctx context.Context, collectionID, userID uuid.UUID) error
	AddRecipe(ctx context.Context, collectionID, recipeID, userID uuid.UUID) error
	RemoveRecipe(ctx context.Context, collectionID, recipeID, userID uuid.UUID) error
	ListRecipes(ctx context.Context, collectionID, userID uuid.UUID, p Pagination) (*RecipeList, error)
}

// RegisterCommand creates an account.
type RegisterCommand struct {
	Email    string
	Password string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *user.User
	Token string
}

// UserService covers registration, login and profile lookup.
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
