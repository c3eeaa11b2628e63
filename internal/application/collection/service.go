// Package collection implements user-owned recipe collections.
package collection

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/ports/inbound"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// Service implements the inbound CollectionService interface. Every
// operation on an existing collection checks caller ownership first.
type Service struct {
	repo   outbound.CollectionRepository
	logger *zap.Logger
}

// NewService creates a new collection service
func NewService(repo outbound.CollectionRepository, logger *zap.Logger) inbound.CollectionService {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create creates a collection for the caller.
func (s *Service) Create(ctx context.Context, cmd inbound.CreateCollectionCommand) (*collection.Collection, error) {
	c, err := collection.New(cmd.UserID, cmd.Name, cmd.Description, cmd.Color)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("collection created",
		zap.String("collection_id", c.ID.String()),
		zap.String("user_id", cmd.UserID.String()),
	)
	return c, nil
}

// List lists the caller's collections.
func (s *Service) List(ctx context.Context, userID uuid.UUID, p inbound.Pagination) ([]*collection.Collection, int64, error) {
	return s.repo.FindByUserID(ctx, userID, outbound.Page{Offset: p.Offset(), Limit: p.PageSize})
}

// Get returns one of the caller's collections.
func (s *Service) Get(ctx context.Context, collectionID, userID uuid.UUID) (*collection.Collection, error) {
	return s.owned(ctx, collectionID, userID)
}

// Update applies a partial edit to one of the caller's collections.
func (s *Service) Update(ctx context.Context, cmd inbound.UpdateCollectionCommand) (*collection.Collection, error) {
	c, err := s.owned(ctx, cmd.CollectionID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := c.Update(cmd.Name, cmd.Description, cmd.Color); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes one of the caller's collections and its links.
func (s *Service) Delete(ctx context.Context, collectionID, userID uuid.UUID) error {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, collectionID)
}

// AddRecipe links a recipe into the caller's collection. Re-adding is
// a no-op.
func (s *Service) AddRecipe(ctx context.Context, collectionID, recipeID, userID uuid.UUID) error {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return err
	}
	return s.repo.AddRecipe(ctx, collectionID, recipeID)
}

// RemoveRecipe unlinks a recipe from the caller's collection.
func (s *Service) RemoveRecipe(ctx context.Context, collectionID, recipeID, userID uuid.UUID) error {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return err
	}
	return s.repo.RemoveRecipe(ctx, collectionID, recipeID)
}

// ListRecipes lists the recipes in the caller's collection.
func (s *Service) ListRecipes(ctx context.Context, collectionID, userID uuid.UUID, p inbound.Pagination) (*inbound.RecipeList, error) {
	if _, err := s.owned(ctx, collectionID, userID); err != nil {
		return nil, err
	}

	recipes, total, err := s.repo.FindRecipes(ctx, collectionID, &userID, outbound.Page{Offset: p.Offset(), Limit: p.PageSize})
	if err != nil {
		return nil, err
	}
	return &inbound.RecipeList{
		Recipes:  recipes,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

// owned loads a collection and hides other users' collections behind
// not-found.
func (s *Service) owned(ctx context.Context, collectionID, userID uuid.UUID) (*collection.Collection, error) {
	c, err := s.repo.FindByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, apperrors.NewCollectionNotFoundError(collectionID.String())
	}
	return c, nil
}
