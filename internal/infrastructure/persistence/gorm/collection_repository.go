package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// CollectionRepository implements the collection repository interface
// using GORM
type CollectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *gorm.DB) outbound.CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create creates a new collection
func (r *CollectionRepository) Create(ctx context.Context, c *collection.Collection) error {
	if err := r.db.WithContext(ctx).Create(CollectionToModel(c)).Error; err != nil {
		return apperrors.NewDatabaseError("create collection", err)
	}
	return nil
}

// FindByID finds a collection by ID with its recipe count.
func (r *CollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	var model CollectionModel

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewCollectionNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find collection", err)
	}

	c := ModelToCollection(&model)
	count, err := r.recipeCount(ctx, id)
	if err != nil {
		return nil, err
	}
	c.RecipeCount = count
	return c, nil
}

// FindByUserID lists a user's collections, newest first, each with its
// recipe count.
func (r *CollectionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page outbound.Page) ([]*collection.Collection, int64, error) {
	query := r.db.WithContext(ctx).Model(&CollectionModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count collections", err)
	}

	var models []CollectionModel
	err := query.
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list collections", err)
	}

	collections := make([]*collection.Collection, len(models))
	for i := range models {
		collections[i] = ModelToCollection(&models[i])
		count, err := r.recipeCount(ctx, models[i].ID)
		if err != nil {
			return nil, 0, err
		}
		collections[i].RecipeCount = count
	}
	return collections, total, nil
}

// Update saves collection edits.
func (r *CollectionRepository) Update(ctx context.Context, c *collection.Collection) error {
	result := r.db.WithContext(ctx).Model(&CollectionModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
			"color":       c.Color,
			"updated_at":  c.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.NewDatabaseError("update collection", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewCollectionNotFoundError(c.ID.String())
	}
	return nil
}

// Delete removes a collection and, via cascade, its recipe links.
func (r *CollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&CollectionRecipeModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&CollectionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NewCollectionNotFoundError(id.String())
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.NewDatabaseError("delete collection", err)
	}
	return nil
}

// AddRecipe links a recipe into a collection. Re-adding an existing
// link is a no-op.
func (r *CollectionRepository) AddRecipe(ctx context.Context, collectionID, recipeID uuid.UUID) error {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("id = ?", recipeID).Count(&exists).Error; err != nil {
		return apperrors.NewDatabaseError("check recipe", err)
	}
	if exists == 0 {
		return apperrors.NewRecipeNotFoundError(recipeID.String())
	}

	link := &CollectionRecipeModel{
		CollectionID: collectionID,
		RecipeID:     recipeID,
		AddedAt:      time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
	if err != nil {
		return apperrors.NewDatabaseError("add recipe to collection", err)
	}
	return nil
}

// RemoveRecipe unlinks a recipe from a collection. Removing a missing
// link is a no-op.
func (r *CollectionRepository) RemoveRecipe(ctx context.Context, collectionID, recipeID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("collection_id = ? AND recipe_id = ?", collectionID, recipeID).
		Delete(&CollectionRecipeModel{}).Error
	if err != nil {
		return apperrors.NewDatabaseError("remove recipe from collection", err)
	}
	return nil
}

// FindRecipes lists the recipes in a collection, most recently added
// first.
func (r *CollectionRepository) FindRecipes(ctx context.Context, collectionID uuid.UUID, viewerID *uuid.UUID, page outbound.Page) ([]*recipe.Recipe, int64, error) {
	base := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Joins("JOIN collection_recipes ON collection_recipes.recipe_id = recipes.id").
		Where("collection_recipes.collection_id = ?", collectionID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count collection recipes", err)
	}

	var models []RecipeModel
	err := base.
		Order("collection_recipes.added_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list collection recipes", err)
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	if viewerID != nil && len(recipes) > 0 {
		ids := make([]uuid.UUID, len(models))
		for i := range models {
			ids[i] = models[i].ID
		}
		var favoriteIDs []uuid.UUID
		err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
			Pluck("recipe_id", &favoriteIDs).Error
		if err == nil {
			favorited := make(map[uuid.UUID]bool, len(favoriteIDs))
			for _, id := range favoriteIDs {
				favorited[id] = true
			}
			for _, rec := range recipes {
				rec.IsFavorited = favorited[rec.ID]
			}
		}
	}
	return recipes, total, nil
}

func (r *CollectionRepository) recipeCount(ctx context.Context, collectionID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CollectionRecipeModel{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.NewDatabaseError("count collection recipes", err)
	}
	return int(count), nil
}
