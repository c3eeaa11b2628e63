// Package security provides password hashing and JWT issuance and
// validation.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodml/recipelab/internal/infrastructure/config"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

const revokedKeyPrefix = "auth:revoked:"

// Claims represents the JWT claims structure
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService signs and validates bearer tokens and hashes passwords.
type AuthService struct {
	config    *config.Config
	logger    *zap.Logger
	cache     outbound.CacheRepository
	jwtSecret []byte
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, logger *zap.Logger, cache outbound.CacheRepository) *AuthService {
	return &AuthService{
		config:    cfg,
		logger:    logger,
		cache:     cache,
		jwtSecret: []byte(cfg.Auth.JWTSecret),
	}
}

// HashPassword hashes a plaintext password with bcrypt
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.config.Auth.BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against its hash
func (a *AuthService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken creates a signed HS256 access token for a user
func (a *AuthService) GenerateToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.config.App.Name,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.Auth.JWTExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token and returns its claims.
// Revoked tokens fail validation.
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	if a.cache != nil {
		revoked, err := a.cache.Exists(ctx, revokedKeyPrefix+claims.ID)
		if err != nil {
			a.logger.Warn("revocation check failed", zap.Error(err))
		} else if revoked {
			return nil, apperrors.NewUnauthorizedError("token has been revoked")
		}
	}

	return claims, nil
}

// RevokeToken marks a token ID as revoked until its natural expiry.
func (a *AuthService) RevokeToken(ctx context.Context, claims *Claims) error {
	if a.cache == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return a.cache.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl)
}
