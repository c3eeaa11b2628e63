package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/infrastructure/http/middleware"
	"github.com/foodml/recipelab/internal/ports/inbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// RecipeAPIHandlers handles recipe endpoints
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		validate:      validator.New(),
		logger:        logger,
	}
}

type generateRecipeRequest struct {
	Prompt      string   `json:"prompt" validate:"required,min=5,max=500"`
	Servings    int      `json:"servings" validate:"omitempty,min=1,max=12"`
	CuisineType string   `json:"cuisine_type" validate:"omitempty,max=50"`
	DietaryTags []string `json:"dietary_restrictions"`
}

// Generate handles POST /api/v1/recipes/generate
func (h *RecipeAPIHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req generateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	rec, err := h.recipeService.Generate(r.Context(), inbound.GenerateRecipeCommand{
		UserID:      userID,
		Prompt:      req.Prompt,
		Servings:    req.Servings,
		CuisineType: req.CuisineType,
		DietaryTags: req.DietaryTags,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    toRecipeResponse(rec),
	})
}

// ListMine handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	p, err := parsePagination(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	list, err := h.recipeService.ListMine(r.Context(), userID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toRecipeListResponse(list),
	})
}

// Get handles GET /api/v1/recipes/{recipeID}
func (h *RecipeAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	recipeID, err := uuidParam(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.recipeService.GetByID(r.Context(), recipeID, viewerID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toRecipeResponse(rec),
	})
}

// ToggleFavorite handles POST /api/v1/recipes/{recipeID}/favorite
func (h *RecipeAPIHandlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	recipeID, err := uuidParam(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	favorited, err := h.recipeService.ToggleFavorite(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"recipe_id":    recipeID.String(),
			"is_favorited": favorited,
		},
	})
}

// ListFavorites handles GET /api/v1/recipes/favorites
func (h *RecipeAPIHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	p, err := parsePagination(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	list, err := h.recipeService.ListFavorites(r.Context(), userID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toRecipeListResponse(list),
	})
}

// Search handles GET /api/v1/recipes/search
func (h *RecipeAPIHandlers) Search(w http.ResponseWriter, r *http.Request) {
	p, err := parsePagination(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	query := inbound.SearchRecipesQuery{
		Query:      r.URL.Query().Get("q"),
		Cuisine:    r.URL.Query().Get("cuisine"),
		Difficulty: r.URL.Query().Get("difficulty"),
		Pagination: p,
	}
	if raw := r.URL.Query().Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, h.logger, apperrors.NewValidationError("min_rating must be a number"))
			return
		}
		query.MinRating = minRating
	}

	list, err := h.recipeService.Search(r.Context(), query, viewerID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toRecipeListResponse(list),
	})
}

// Trending handles GET /api/v1/recipes/trending
func (h *RecipeAPIHandlers) Trending(w http.ResponseWriter, r *http.Request) {
	p, err := parsePagination(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Zero means no threshold and lists the whole catalog.
	minVerifications := 1
	if raw := r.URL.Query().Get("min_verifications"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, h.logger, apperrors.NewValidationError("min_verifications must be zero or a positive integer"))
			return
		}
		minVerifications = parsed
	}

	list, err := h.recipeService.Trending(r.Context(), minVerifications, viewerID(r), p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toRecipeListResponse(list),
	})
}

// viewerID returns the authenticated user's ID when present, for
// endpoints that personalize results but allow anonymous access.
func viewerID(r *http.Request) *uuid.UUID {
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return &userID
	}
	return nil
}
