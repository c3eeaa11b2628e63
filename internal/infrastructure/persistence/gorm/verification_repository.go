package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodml/recipelab/internal/domain/verification"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// VerificationRepository implements the verification repository
// interface using GORM
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) outbound.VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create inserts a verification and recomputes the recipe's rating
// rollup in the same transaction, so the stats a reader sees always
// include the verification that produced them.
func (r *VerificationRepository) Create(ctx context.Context, v *verification.Verification) (verification.Stats, error) {
	var stats verification.Stats

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&RecipeModel{}).Where("id = ?", v.RecipeID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperrors.NewRecipeNotFoundError(v.RecipeID.String())
		}

		if err := tx.Create(VerificationToModel(v)).Error; err != nil {
			return err
		}

		var ratings []float64
		err := tx.Model(&VerificationModel{}).
			Where("recipe_id = ?", v.RecipeID).
			Pluck("rating", &ratings).Error
		if err != nil {
			return err
		}

		stats = verification.Summarize(ratings)
		return tx.Model(&RecipeModel{}).
			Where("id = ?", v.RecipeID).
			Updates(map[string]interface{}{
				"verified_count": stats.VerifiedCount,
				"avg_rating":     stats.AvgRating,
			}).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return verification.Stats{}, appErr
		}
		return verification.Stats{}, apperrors.NewDatabaseError("create verification", err)
	}

	return stats, nil
}

// FindByRecipe lists verifications for a recipe, newest first.
func (r *VerificationRepository) FindByRecipe(ctx context.Context, recipeID uuid.UUID, page outbound.Page) ([]*verification.Verification, int64, error) {
	query := r.db.WithContext(ctx).Model(&VerificationModel{}).Where("recipe_id = ?", recipeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count verifications", err)
	}

	var models []VerificationModel
	err := query.
		Order("verified_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list verifications", err)
	}

	return toVerifications(models), total, nil
}

// FindByUser lists a user's verifications, newest first.
func (r *VerificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, page outbound.Page) ([]*verification.Verification, int64, error) {
	query := r.db.WithContext(ctx).Model(&VerificationModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count verifications", err)
	}

	var models []VerificationModel
	err := query.
		Order("verified_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list verifications", err)
	}

	return toVerifications(models), total, nil
}

// RatingSummary reports the would-make-again count, the total and the
// mean rating across all verifications for a recipe.
func (r *VerificationRepository) RatingSummary(ctx context.Context, recipeID uuid.UUID) (int64, int64, float64, error) {
	var ratings []float64
	err := r.db.WithContext(ctx).Model(&VerificationModel{}).
		Where("recipe_id = ?", recipeID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return 0, 0, 0, apperrors.NewDatabaseError("summarize verifications", err)
	}

	var wouldMake int64
	err = r.db.WithContext(ctx).Model(&VerificationModel{}).
		Where("recipe_id = ? AND would_make = ?", recipeID, true).
		Count(&wouldMake).Error
	if err != nil {
		return 0, 0, 0, apperrors.NewDatabaseError("summarize verifications", err)
	}

	stats := verification.Summarize(ratings)
	return wouldMake, int64(len(ratings)), stats.AvgRating, nil
}

func toVerifications(models []VerificationModel) []*verification.Verification {
	out := make([]*verification.Verification, len(models))
	for i := range models {
		out[i] = ModelToVerification(&models[i])
	}
	return out
}
