// Package verification implements recording and listing cook-through
// feedback.
package verification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/domain/verification"
	"github.com/foodml/recipelab/internal/ports/inbound"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// Service implements the inbound VerificationService interface.
type Service struct {
	repo   outbound.VerificationRepository
	logger *zap.Logger
}

// NewService creates a new verification service
func NewService(repo outbound.VerificationRepository, logger *zap.Logger) inbound.VerificationService {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Verify records a cook-through and returns the verification with the
// recipe's updated rating rollup.
func (s *Service) Verify(ctx context.Context, cmd inbound.VerifyRecipeCommand) (*verification.Verification, verification.Stats, error) {
	v, err := verification.New(cmd.RecipeID, cmd.UserID, cmd.Rating, cmd.Notes, cmd.WouldMake, cmd.ExecutionMinutes)
	if err != nil {
		return nil, verification.Stats{}, apperrors.NewValidationError(err.Error())
	}

	stats, err := s.repo.Create(ctx, v)
	if err != nil {
		return nil, verification.Stats{}, err
	}

	s.logger.Info("recipe verified",
		zap.String("recipe_id", cmd.RecipeID.String()),
		zap.Float64("rating", cmd.Rating),
		zap.Int("verified_count", stats.VerifiedCount),
	)
	return v, stats, nil
}

// ListForRecipe lists a recipe's verifications with its current
// rollup and would-make-again rate.
func (s *Service) ListForRecipe(ctx context.Context, recipeID uuid.UUID, p inbound.Pagination) (*inbound.VerificationList, error) {
	verifications, total, err := s.repo.FindByRecipe(ctx, recipeID, outbound.Page{Offset: p.Offset(), Limit: p.PageSize})
	if err != nil {
		return nil, err
	}

	wouldMake, totalCount, avgRating, err := s.repo.RatingSummary(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	return &inbound.VerificationList{
		Verifications: verifications,
		Total:         total,
		AvgRating:     avgRating,
		SuccessRate:   verification.SuccessRate(int(wouldMake), int(totalCount)),
	}, nil
}

// ListMine lists the caller's verifications.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, p inbound.Pagination) ([]*verification.Verification, int64, error) {
	return s.repo.FindByUser(ctx, userID, outbound.Page{Offset: p.Offset(), Limit: p.PageSize})
}
