package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/infrastructure/http/middleware"
	"github.com/foodml/recipelab/internal/infrastructure/security"
	"github.com/foodml/recipelab/internal/ports/inbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// AuthAPIHandlers handles authentication endpoints
type AuthAPIHandlers struct {
	userService inbound.UserService
	authService *security.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new auth API handlers instance
func NewAuthAPIHandlers(userService inbound.UserService, authService *security.AuthService, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.userService.Register(r.Context(), inbound.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data: authResponse{
			Token: result.Token,
			User:  toUserResponse(result.User),
		},
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	result, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: authResponse{
			Token: result.Token,
			User:  toUserResponse(result.User),
		},
	})
}

// Logout handles POST /api/v1/auth/logout. The presented token is
// revoked until its natural expiry.
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	claims, err := h.authService.ValidateToken(r.Context(), token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.authService.RevokeToken(r.Context(), claims); err != nil {
		h.logger.Error("token revocation failed", zap.Error(err))
		writeError(w, h.logger, apperrors.NewInternalError("logout failed"))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"message": "logged out"},
	})
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Me handles GET /api/v1/auth/me
func (h *AuthAPIHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    toUserResponse(u),
	})
}
