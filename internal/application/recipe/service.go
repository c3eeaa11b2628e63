// Package recipe implements the recipe application service: AI
// generation, retrieval, favorites and discovery.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/application/ai"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/ports/inbound"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

const (
	minPromptLength = 5
	maxPromptLength = 500
	maxServings     = 12

	searchCacheTTL   = 10 * time.Minute
	trendingCacheTTL = time.Minute
)

// Service implements the inbound RecipeService interface.
type Service struct {
	repo      outbound.RecipeRepository
	generator *ai.Generator
	cache     outbound.CacheRepository
	logger    *zap.Logger
}

// NewService creates a new recipe service
func NewService(
	repo outbound.RecipeRepository,
	generator *ai.Generator,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.RecipeService {
	return &Service{
		repo:      repo,
		generator: generator,
		cache:     cache,
		logger:    logger,
	}
}

// Generate validates the request, asks the AI generator for a draft
// and persists the materialized recipe.
func (s *Service) Generate(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*recipe.Recipe, error) {
	prompt := strings.TrimSpace(cmd.Prompt)
	if len(prompt) < minPromptLength || len(prompt) > maxPromptLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("prompt must be between %d and %d characters", minPromptLength, maxPromptLength))
	}

	servings := cmd.Servings
	if servings == 0 {
		servings = recipe.DefaultServings
	}
	if servings < 1 || servings > maxServings {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("servings must be between 1 and %d", maxServings))
	}

	draft, err := s.generator.Generate(ctx, ai.ParseRequest{
		Prompt:      prompt,
		Servings:    servings,
		CuisineType: cmd.CuisineType,
		DietaryTags: cmd.DietaryTags,
	})
	if err != nil {
		return nil, err
	}

	rec, err := recipe.New(draft, cmd.UserID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("recipe generated",
		zap.String("recipe_id", rec.ID.String()),
		zap.String("user_id", cmd.UserID.String()),
	)
	return rec, nil
}

// GetByID retrieves a recipe with the viewer's favorite flag.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*recipe.Recipe, error) {
	return s.repo.FindByID(ctx, id, viewerID)
}

// ListMine lists the caller's own recipes, newest first.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, p inbound.Pagination) (*inbound.RecipeList, error) {
	recipes, total, err := s.repo.FindByUserID(ctx, userID, toPage(p))
	if err != nil {
		return nil, err
	}
	return list(recipes, total, p), nil
}

// ToggleFavorite flips the favorite mark and reports the new state.
func (s *Service) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	favorited, err := s.repo.ToggleFavorite(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}

	s.logger.Debug("favorite toggled",
		zap.String("recipe_id", recipeID.String()),
		zap.Bool("favorited", favorited),
	)
	return favorited, nil
}

// ListFavorites lists the caller's favorited recipes.
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID, p inbound.Pagination) (*inbound.RecipeList, error) {
	recipes, total, err := s.repo.FindFavorites(ctx, userID, toPage(p))
	if err != nil {
		return nil, err
	}
	return list(recipes, total, p), nil
}

// Search filters the catalog by text, cuisine, difficulty and minimum
// rating.
func (s *Service) Search(ctx context.Context, q inbound.SearchRecipesQuery, viewerID *uuid.UUID) (*inbound.RecipeList, error) {
	if q.MinRating < 0 || q.MinRating > 5 {
		return nil, apperrors.NewValidationError("min_rating must be between 0 and 5")
	}

	criteria := outbound.SearchCriteria{
		Query:      strings.TrimSpace(q.Query),
		Cuisine:    strings.TrimSpace(q.Cuisine),
		Difficulty: strings.TrimSpace(q.Difficulty),
		MinRating:  q.MinRating,
	}

	// Anonymous results carry no per-viewer favorite flags, so they
	// are safe to share through the cache.
	key := searchCacheKey(criteria, q.Pagination)
	if viewerID == nil {
		if cached, ok := s.cachedList(ctx, key); ok {
			return cached, nil
		}
	}

	recipes, total, err := s.repo.Search(ctx, criteria, viewerID, toPage(q.Pagination))
	if err != nil {
		return nil, err
	}
	result := list(recipes, total, q.Pagination)
	if viewerID == nil {
		s.cacheList(ctx, key, result, searchCacheTTL)
	}
	return result, nil
}

// Trending lists recipes with enough verifications, best rated first.
func (s *Service) Trending(ctx context.Context, minVerifications int, viewerID *uuid.UUID, p inbound.Pagination) (*inbound.RecipeList, error) {
	if minVerifications < 0 {
		minVerifications = 0
	}

	key := trendingCacheKey(minVerifications, p)
	if viewerID == nil {
		if cached, ok := s.cachedList(ctx, key); ok {
			return cached, nil
		}
	}

	recipes, total, err := s.repo.FindTrending(ctx, minVerifications, viewerID, toPage(p))
	if err != nil {
		return nil, err
	}
	result := list(recipes, total, p)
	if viewerID == nil {
		s.cacheList(ctx, key, result, trendingCacheTTL)
	}
	return result, nil
}

func (s *Service) cachedList(ctx context.Context, key string) (*inbound.RecipeList, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	var cached inbound.RecipeList
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.logger.Debug("dropping undecodable cached recipe list",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &cached, true
}

func (s *Service) cacheList(ctx context.Context, key string, l *inbound.RecipeList, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), ttl); err != nil {
		s.logger.Debug("failed to cache recipe list",
			zap.String("key", key), zap.Error(err))
	}
}

func searchCacheKey(c outbound.SearchCriteria, p inbound.Pagination) string {
	return fmt.Sprintf("recipes:search:%s|%s|%s|%.1f|%d|%d",
		strings.ToLower(c.Query), strings.ToLower(c.Cuisine),
		strings.ToLower(c.Difficulty), c.MinRating, p.Page, p.PageSize)
}

func trendingCacheKey(minVerifications int, p inbound.Pagination) string {
	return fmt.Sprintf("recipes:trending:%d|%d|%d", minVerifications, p.Page, p.PageSize)
}

func toPage(p inbound.Pagination) outbound.Page {
	return outbound.Page{Offset: p.Offset(), Limit: p.PageSize}
}

func list(recipes []*recipe.Recipe, total int64, p inbound.Pagination) *inbound.RecipeList {
	return &inbound.RecipeList{
		Recipes:  recipes,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
