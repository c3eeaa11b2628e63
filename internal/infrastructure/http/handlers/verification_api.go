package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/infrastructure/http/middleware"
	"github.com/foodml/recipelab/internal/ports/inbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// VerificationAPIHandlers handles verification endpoints
type VerificationAPIHandlers struct {
	verificationService inbound.VerificationService
	validate            *validator.Validate
	logger              *zap.Logger
}

// NewVerificationAPIHandlers creates a new verification API handlers instance
func NewVerificationAPIHandlers(verificationService inbound.VerificationService, logger *zap.Logger) *VerificationAPIHandlers {
	return &VerificationAPIHandlers{
		verificationService: verificationService,
		validate:            validator.New(),
		logger:              logger,
	}
}

type verifyRecipeRequest struct {
	Rating           float64 `json:"rating" validate:"required,min=1,max=5"`
	Notes            string  `json:"notes" validate:"omitempty,max=1000"`
	WouldMake        *bool   `json:"would_make_again"`
	ExecutionMinutes *int    `json:"execution_time_minutes" validate:"omitempty,min=0"`
}

// Verify handles POST /api/v1/recipes/{recipeID}/verify
func (h *VerificationAPIHandlers) Verify(w http.ResponseWriter, r *http.Request) {
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

	var req verifyRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	wouldMake := true
	if req.WouldMake != nil {
		wouldMake = *req.WouldMake
	}

	v, stats, err := h.verificationService.Verify(r.Context(), inbound.VerifyRecipeCommand{
		RecipeID:         recipeID,
		UserID:           userID,
		Rating:           req.Rating,
		Notes:            req.Notes,
		WouldMake:        wouldMake,
		ExecutionMinutes: req.ExecutionMinutes,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"verification":   toVerificationResponse(v),
			"verified_count": stats.VerifiedCount,
			"avg_rating":     stats.AvgRating,
		},
	})
}

// ListForRecipe handles GET /api/v1/recipes/{recipeID}/verifications
func (h *VerificationAPIHandlers) ListForRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, err := uuidParam(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := parsePagination(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	list, err := h.verificationService.ListForRecipe(r.Context(), recipeID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	verifications := make([]verificationResponse, len(list.Verifications))
	for i, v := range list.Verifications {
		verifications[i] = toVerificationResponse(v)
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"verifications": verifications,
			"total":         list.Total,
			"avg_rating":    list.AvgRating,
			"success_rate":  list.SuccessRate,
		},
	})
}

// ListMine handles GET /api/v1/verifications
func (h *VerificationAPIHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
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

	verifications, total, err := h.verificationService.ListMine(r.Context(), userID, p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]verificationResponse, len(verifications))
	for i, v := range verifications {
		responses[i] = toVerificationResponse(v)
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"verifications": responses,
			"total":         total,
		},
	})
}
