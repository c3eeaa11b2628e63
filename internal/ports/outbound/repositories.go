// Package outbound defines the driven-side contracts the application
// layer depends on. Implementations live under infrastructure.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
)

// Page carries offset pagination through the repository layer.
// Offset is (page-1)*size, computed by the caller.
type Page struct {
	Offset int
	Limit  int
}

// SearchCriteria filters the recipe catalog. Zero values mean the
// filter is not applied, except MinRating which always applies.
type SearchCriteria struct {
	Query      string
	Cuisine    string
	Difficulty string
	MinRating  float64
}

// RecipeRepository persists recipes and per-user favorite marks.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	// FindByID loads a recipe. When viewerID is non-nil the returned
	// recipe carries the viewer's favorite flag.
	FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page Page) ([]*recipe.Recipe, int64, error)
	FindFavorites(ctx context.Context, userID uuid.UUID, page Page) ([]*recipe.Recipe, int64, error)
	Search(ctx context.Context, criteria SearchCriteria, viewerID *uuid.UUID, page Page) ([]*recipe.Recipe, int64, error)
	FindTrending(ctx context.Context, minVerifications int, viewerID *uuid.UUID, page Page) ([]*recipe.Recipe, int64, error)
	// ToggleFavorite flips the favorite mark and reports the new state.
	ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	UpdateStats(ctx context.Context, recipeID uuid.UUID, stats verification.Stats) error
}

// VerificationRepository persists cook-through feedback. Create must
// also recompute the owning recipe's stats in the same transaction.
type VerificationRepository interface {
	Create(ctx context.Context, v *verification.Verification) (verification.Stats, error)
	FindByRecipe(ctx context.Context, recipeID uuid.UUID, page Page) ([]*verification.Verification, int64, error)
	FindByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*verification.Verification, int64, error)
	// RatingSummary reports the would-make-again count, the total and
	// the mean rating across all verifications for a recipe.
	RatingSummary(ctx context.Context, recipeID uuid.UUID) (wouldMake int64, total int64, avgRating float64, err error)
}

// CollectionRepository persists collections and their recipe links.
type CollectionRepository interface {
	Create(ctx context.Context, c *collection.Collection) error
	FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page Page) ([]*collection.Collection, int64, error)
	Update(ctx context.Context, c *collection.Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AddRecipe is idempotent: linking an already-linked recipe is a
	// no-op and returns no error.
	AddRecipe(ctx context.Context, collectionID, recipeID uuid.UUID) error
	RemoveRecipe(ctx context.Context, collectionID, recipeID uuid.UUID) error
	FindRecipes(ctx context.Context, collectionID uuid.UUID, viewerID *uuid.UUID, page Page) ([]*recipe.Recipe, int64, error)
}

// UserRepository persists accounts. Emails are stored normalized.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CacheRepository abstracts the cache used for hot read paths such as
// trending and for token revocation marks.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
