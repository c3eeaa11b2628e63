// Package apiserver provides the JSON API HTTP server.
package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/infrastructure/config"
	"github.com/foodml/recipelab/internal/infrastructure/http/handlers"
	"github.com/foodml/recipelab/internal/infrastructure/http/middleware"
	"github.com/foodml/recipelab/internal/infrastructure/security"
	"github.com/foodml/recipelab/internal/ports/inbound"
)

// APIServer serves the versioned JSON API.
type APIServer struct {
	config              *config.Config
	logger              *zap.Logger
	server              *http.Server
	router              *chi.Mux
	authService         *security.AuthService
	userService         inbound.UserService
	recipeService       inbound.RecipeService
	verificationService inbound.VerificationService
	collectionService   inbound.CollectionService
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	authService *security.AuthService,
	userService inbound.UserService,
	recipeService inbound.RecipeService,
	verificationService inbound.VerificationService,
	collectionService inbound.CollectionService,
) *APIServer {
	server := &APIServer{
		config:              cfg,
		logger:              log,
		authService:         authService,
		userService:         userService,
		recipeService:       recipeService,
		verificationService: verificationService,
		collectionService:   collectionService,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the router and middleware chain
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics())
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.RateLimit(s.config.RateLimit))

	r.Get("/health", s.handleHealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	authH := handlers.NewAuthAPIHandlers(s.userService, s.authService, s.logger)
	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.logger)
	verifyH := handlers.NewVerificationAPIHandlers(s.verificationService, s.logger)
	collectionH := handlers.NewCollectionAPIHandlers(s.collectionService, s.logger)

	// Authentication routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authService))
			r.Get("/me", authH.Me)
			r.Post("/logout", authH.Logout)
		})
	})

	// Recipe routes
	r.Route("/recipes", func(r chi.Router) {
		// Discovery endpoints personalize favorite flags when a token
		// is present but do not require one.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthenticate(s.authService))
			r.Get("/search", recipeH.Search)
			r.Get("/trending", recipeH.Trending)
			r.Get("/{recipeID}", recipeH.Get)
			r.Get("/{recipeID}/verifications", verifyH.ListForRecipe)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authService))
			r.Post("/generate", recipeH.Generate)
			r.Get("/", recipeH.ListMine)
			r.Get("/favorites", recipeH.ListFavorites)
			r.Post("/{recipeID}/favorite", recipeH.ToggleFavorite)
			r.Post("/{recipeID}/verify", verifyH.Verify)
		})
	})

	// Verification routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService))
		r.Get("/verifications", verifyH.ListMine)
	})

	// Collection routes
	r.Route("/collections", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.authService))
		r.Post("/", collectionH.Create)
		r.Get("/", collectionH.List)
		r.Get("/{collectionID}", collectionH.Get)
		r.Put("/{collectionID}", collectionH.Update)
		r.Delete("/{collectionID}", collectionH.Delete)
		r.Get("/{collectionID}/recipes", collectionH.ListRecipes)
		r.Post("/{collectionID}/recipes/{recipeID}", collectionH.AddRecipe)
		r.Delete("/{collectionID}/recipes/{recipeID}", collectionH.RemoveRecipe)
	})
}

// handleHealthCheck handles GET /health
func (s *APIServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Start begins listening for requests
func (s *APIServer) Start() error {
	s.logger.Info("starting API server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured router, used by tests.
func (s *APIServer) Router() http.Handler {
	return s.router
}
