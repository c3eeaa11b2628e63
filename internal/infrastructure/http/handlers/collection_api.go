package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/infrastructure/http/middleware"
	"github.com/foodml/recipelab/internal/ports/inbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// CollectionAPIHandlers handles collection endpoints
type CollectionAPIHandlers struct {
	collectionService inbound.CollectionService
	validate          *validator.Validate
	logger            *zap.Logger
}

// NewCollectionAPIHandlers creates a new collection API handlers instance
func NewCollectionAPIHandlers(collectionService inbound.CollectionService, logger *zap.Logger) *CollectionAPIHandlers {
	return &CollectionAPIHandlers{
		collectionService: collectionService,
		validate:          validator.New(),
		logger:            logger,
	}
}

type createCollectionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type updateCollectionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

// Create handles POST /api/v1/collections
func (h *CollectionAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req createCollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	c, err := h.collectionService.Create(r.Context(), inbound.CreateCollectionCommand{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    toCollectionResponse(c),
	})
}

// List handles GET /api/v1/collections
func (h *CollectionAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
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

	collections, total, err := h.collectionService.List(r.Context(), userID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]collectionResponse, len(collections))
	for i, c := range collections {
		responses[i] = toCollectionResponse(c)
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"collections": responses,
			"total":       total,
		},
	})
}

// Get handles GET /api/v1/collections/{collectionID}
func (h *CollectionAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	collectionID, err := uuidParam(r, "collectionID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	c, err := h.collectionService.Get(r.Context(), collectionID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toCollectionResponse(c),
	})
}

// Update handles PUT /api/v1/collections/{collectionID}
func (h *CollectionAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	collectionID, err := uuidParam(r, "collectionID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req updateCollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	c, err := h.collectionService.Update(r.Context(), inbound.UpdateCollectionCommand{
		CollectionID: collectionID,
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Color:        req.Color,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toCollectionResponse(c),
	})
}

// Delete handles DELETE /api/v1/collections/{collectionID}
func (h *CollectionAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	collectionID, err := uuidParam(r, "collectionID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.collectionService.Delete(r.Context(), collectionID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Collection deleted",
	})
}

// AddRecipe handles POST /api/v1/collections/{collectionID}/recipes/{recipeID}
func (h *CollectionAPIHandlers) AddRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	collectionID, err := uuidParam(r, "collectionID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	recipeID, err := uuidParam(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.collectionService.AddRecipe(r.Context(), collectionID, recipeID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Recipe added to collection",
	})
}

// RemoveRecipe handles DELETE /api/v1/collections/{collectionID}/recipes/{recipeID}
func (h *CollectionAPIHandlers) RemoveRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	collectionID, err := uuidParam(r, "collectionID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	recipeID, err := uuidParam(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.collectionService.RemoveRecipe(r.Context(), collectionID, recipeID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Recipe removed from collection",
	})
}

// ListRecipes handles GET /api/v1/collections/{collectionID}/recipes
func (h *CollectionAPIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	collectionID, err := uuidParam(r, "collectionID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := parsePagination(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	list, err := h.collectionService.ListRecipes(r.Context(), collectionID, userID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toRecipeListResponse(list),
	})
}
