// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/ports/inbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps an error onto its HTTP status and taxonomy code.
// Unknown errors are hidden behind a generic 500. Retryable failures
// advertise a Retry-After so clients back off instead of hammering.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Retryable() {
			w.Header().Set("Retry-After", "5")
		}
		writeJSON(w, logger, appErr.StatusCode(), APIResponse{
			Success: false,
			Error:   appErr.Message,
			Code:    string(appErr.Code),
		})
		return
	}

	logger.Error("unhandled error", zap.Error(err))
	writeJSON(w, logger, http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   "Internal server error",
		Code:    string(apperrors.CodeInternal),
	})
}

// decodeJSON parses the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

// parsePagination reads page and page_size query parameters with
// defaults and bounds.
func parsePagination(r *http.Request) (inbound.Pagination, error) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return inbound.Pagination{}, apperrors.NewValidationError("page must be a positive integer")
		}
		page = parsed
	}

	pageSize := defaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			return inbound.Pagination{}, apperrors.NewValidationError("page_size must be between 1 and 100")
		}
		pageSize = parsed
	}

	return inbound.Pagination{Page: page, PageSize: pageSize}, nil
}

// uuidParam parses a UUID path parameter
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(name + " must be a valid UUID")
	}
	return id, nil
}
