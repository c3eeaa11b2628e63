package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/verification"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.NewDatabaseError("create recipe", err)
	}

	return nil
}

// FindByID finds a recipe by ID. When viewerID is set the returned
// recipe carries the viewer's favorite flag.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}

	rec := ModelToRecipe(&model)
	if viewerID != nil {
		favorited, err := r.isFavorited(ctx, *viewerID, id)
		if err != nil {
			return nil, err
		}
		rec.IsFavorited = favorited
	}
	return rec, nil
}

// FindByUserID finds recipes owned by a user, newest first.
func (r *RecipeRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count recipes", err)
	}

	var models []RecipeModel
	err := query.
		Order("generated_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list recipes", err)
	}

	return r.toRecipes(ctx, models, &userID), total, nil
}

// FindFavorites finds the recipes a user has favorited, most recently
// favorited first.
func (r *RecipeRepository) FindFavorites(ctx context.Context, userID uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	base := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count favorites", err)
	}

	var models []RecipeModel
	err := base.
		Order("favorites.created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list favorites", err)
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
		recipes[i].IsFavorited = true
	}
	return recipes, total, nil
}

// Search filters the catalog. Text filters are case-insensitive
// substring matches; MinRating always applies. Results are ordered by
// avg_rating, then recency.
func (r *RecipeRepository) Search(ctx context.Context, criteria outbound.SearchCriteria, viewerID *uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if criteria.Query != "" {
		pattern := "%" + criteria.Query + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if criteria.Cuisine != "" {
		query = query.Where("LOWER(cuisine_type) LIKE LOWER(?)", "%"+criteria.Cuisine+"%")
	}
	if criteria.Difficulty != "" {
		query = query.Where("LOWER(difficulty) = LOWER(?)", criteria.Difficulty)
	}
	query = query.Where("avg_rating >= ?", criteria.MinRating)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count search results", err)
	}

	var models []RecipeModel
	err := query.
		Order("avg_rating DESC").
		Order("generated_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("search recipes", err)
	}

	return r.toRecipes(ctx, models, viewerID), total, nil
}

// FindTrending returns recipes with at least minVerifications
// cook-throughs, best rated first.
func (r *RecipeRepository) FindTrending(ctx context.Context, minVerifications int, viewerID *uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("verified_count >= ?", minVerifications)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count trending", err)
	}

	var models []RecipeModel
	err := query.
		Order("avg_rating DESC").
		Order("verified_count DESC").
		Order("generated_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list trending", err)
	}

	return r.toRecipes(ctx, models, viewerID), total, nil
}

// ToggleFavorite flips the favorite mark inside a transaction and
// reports the resulting state.
func (r *RecipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var favorited bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&RecipeModel{}).Where("id = ?", recipeID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperrors.NewRecipeNotFoundError(recipeID.String())
		}

		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&FavoriteModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			favorited = false
			return nil
		}

		// Concurrent toggles can race the insert; the conflict clause
		// keeps the second writer a no-op.
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&FavoriteModel{UserID: userID, RecipeID: recipeID}).Error
		if err != nil {
			return err
		}
		favorited = true
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return false, appErr
		}
		return false, apperrors.NewDatabaseError("toggle favorite", err)
	}

	return favorited, nil
}

// UpdateStats writes the denormalized rating rollup on a recipe.
func (r *RecipeRepository) UpdateStats(ctx context.Context, recipeID uuid.UUID, stats verification.Stats) error {
	result := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("id = ?", recipeID).
		Updates(map[string]interface{}{
			"verified_count": stats.VerifiedCount,
			"avg_rating":     stats.AvgRating,
		})
	if result.Error != nil {
		return apperrors.NewDatabaseError("update recipe stats", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewRecipeNotFoundError(recipeID.String())
	}
	return nil
}

func (r *RecipeRepository) isFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewDatabaseError("check favorite", err)
	}
	return count > 0, nil
}

// toRecipes maps models to domain recipes and, when a viewer is set,
// marks the ones the viewer favorited with a single query.
func (r *RecipeRepository) toRecipes(ctx context.Context, models []RecipeModel, viewerID *uuid.UUID) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	if viewerID == nil || len(recipes) == 0 {
		return recipes
	}

	ids := make([]uuid.UUID, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var favoriteIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
		Pluck("recipe_id", &favoriteIDs).Error
	if err != nil {
		return recipes
	}

	favorited := make(map[uuid.UUID]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorited[id] = true
	}
	for _, rec := range recipes {
		rec.IsFavorited = favorited[rec.ID]
	}
	return recipes
}
