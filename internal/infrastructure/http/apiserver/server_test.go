package apiserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	aiapp "github.com/foodml/recipelab/internal/application/ai"
	collectionapp "github.com/foodml/recipelab/internal/application/collection"
	recipeapp "github.com/foodml/recipelab/internal/application/recipe"
	userapp "github.com/foodml/recipelab/internal/application/user"
	verificationapp "github.com/foodml/recipelab/internal/application/verification"
	"github.com/foodml/recipelab/internal/infrastructure/ai/mock"
	"github.com/foodml/recipelab/internal/infrastructure/config"
	"github.com/foodml/recipelab/internal/infrastructure/http/apiserver"
	gormrepo "github.com/foodml/recipelab/internal/infrastructure/persistence/gorm"
	"github.com/foodml/recipelab/internal/infrastructure/persistence/memory"
	"github.com/foodml/recipelab/internal/infrastructure/persistence/sqlite"
	"github.com/foodml/recipelab/internal/infrastructure/security"
)

// APITestSuite drives the full HTTP stack against an in-memory
// database with the stub model provider.
type APITestSuite struct {
	suite.Suite
	handler http.Handler
}

func (suite *APITestSuite) SetupTest() {
	cfg := &config.Config{}
	cfg.App.Name = "recipelab-test"
	cfg.App.Version = "test"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiration = time.Hour
	cfg.Auth.BCryptCost = 4
	cfg.RateLimit.RequestsPerMin = 6000
	cfg.RateLimit.BurstSize = 100

	db, err := sqlite.SetupDatabase("", gormlogger.Silent)
	require.NoError(suite.T(), err)

	log := zap.NewNop()
	cache := memory.NewCacheRepository()
	authService := security.NewAuthService(cfg, log, cache)

	recipeRepo := gormrepo.NewRecipeRepository(db)
	userRepo := gormrepo.NewUserRepository(db)
	verificationRepo := gormrepo.NewVerificationRepository(db)
	collectionRepo := gormrepo.NewCollectionRepository(db)

	generator := aiapp.NewGenerator(mock.NewClient(), log)

	server := apiserver.NewAPIServer(
		cfg,
		log,
		authService,
		userapp.NewService(userRepo, authService, log),
		recipeapp.NewService(recipeRepo, generator, cache, log),
		verificationapp.NewService(verificationRepo, log),
		collectionapp.NewService(collectionRepo, log),
	)
	suite.handler = server.Router()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func (suite *APITestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	suite.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (suite *APITestSuite) register(email string) string {
	rec, env := suite.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "sup3rsecret",
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
	require.NotEmpty(suite.T(), data.Token)
	return data.Token
}

func (suite *APITestSuite) generateRecipe(token, prompt string) string {
	rec, env := suite.do(http.MethodPost, "/api/v1/recipes/generate", token, map[string]interface{}{
		"prompt": prompt,
	})
	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
	require.NotEmpty(suite.T(), data.ID)
	return data.ID
}

func (suite *APITestSuite) TestHealth() {
	// Arrange
	suite.SetupTest()

	// Act
	rec, _ := suite.do(http.MethodGet, "/health", "", nil)

	// Assert
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "healthy")
}

func (suite *APITestSuite) TestAuth() {
	suite.Run("RegisterThenLogin_ShouldIssueTokens", func() {
		// Arrange
		suite.SetupTest()
		suite.register("cook@example.com")

		// Act
		rec, env := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "cook@example.com",
			"password": "sup3rsecret",
		})

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var data struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
		assert.NotEmpty(suite.T(), data.Token)
		assert.Equal(suite.T(), "cook@example.com", data.User.Email)
	})

	suite.Run("DuplicateRegister_ShouldConflict", func() {
		// Arrange
		suite.SetupTest()
		suite.register("cook@example.com")

		// Act
		rec, env := suite.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":    "cook@example.com",
			"password": "sup3rsecret",
		})

		// Assert
		assert.Equal(suite.T(), http.StatusConflict, rec.Code)
		assert.Equal(suite.T(), "EMAIL_ALREADY_EXISTS", env.Code)
	})

	suite.Run("WrongPassword_ShouldUnauthorized", func() {
		// Arrange
		suite.SetupTest()
		suite.register("cook@example.com")

		// Act
		rec, _ := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "cook@example.com",
			"password": "wrong-password",
		})

		// Assert
		assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	})

	suite.Run("Me_ShouldRequireToken", func() {
		// Arrange
		suite.SetupTest()

		// Act
		rec, _ := suite.do(http.MethodGet, "/api/v1/auth/me", "", nil)

		// Assert
		assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	})

	suite.Run("Logout_ShouldRevokeToken", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")
		before, _ := suite.do(http.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(suite.T(), http.StatusOK, before.Code)

		// Act
		rec, _ := suite.do(http.MethodPost, "/api/v1/auth/logout", token, nil)

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		after, _ := suite.do(http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(suite.T(), http.StatusUnauthorized, after.Code)
	})

	suite.Run("Logout_ShouldRequireToken", func() {
		// Arrange
		suite.SetupTest()

		// Act
		rec, _ := suite.do(http.MethodPost, "/api/v1/auth/logout", "", nil)

		// Assert
		assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	})
}

func (suite *APITestSuite) TestRecipeFlow() {
	suite.Run("GenerateAndList_ShouldRoundTrip", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")

		// Act
		recipeID := suite.generateRecipe(token, "a comforting miso ramen")
		rec, env := suite.do(http.MethodGet, "/api/v1/recipes/", token, nil)

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var data struct {
			Recipes []struct {
				ID string `json:"id"`
			} `json:"recipes"`
			Total int64 `json:"total"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
		assert.Equal(suite.T(), int64(1), data.Total)
		require.Len(suite.T(), data.Recipes, 1)
		assert.Equal(suite.T(), recipeID, data.Recipes[0].ID)
	})

	suite.Run("Generate_ShouldRequireAuth", func() {
		// Arrange
		suite.SetupTest()

		// Act
		rec, _ := suite.do(http.MethodPost, "/api/v1/recipes/generate", "", map[string]interface{}{
			"prompt": "a comforting miso ramen",
		})

		// Assert
		assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	})

	suite.Run("ShortPrompt_ShouldFailValidation", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")

		// Act
		rec, _ := suite.do(http.MethodPost, "/api/v1/recipes/generate", token, map[string]interface{}{
			"prompt": "stew",
		})

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("FavoriteToggle_ShouldReflectInList", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")
		recipeID := suite.generateRecipe(token, "weeknight green curry")

		// Act
		rec, env := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/favorite", recipeID), token, nil)

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var toggled struct {
			IsFavorited bool `json:"is_favorited"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &toggled))
		assert.True(suite.T(), toggled.IsFavorited)

		listRec, listEnv := suite.do(http.MethodGet, "/api/v1/recipes/favorites", token, nil)
		require.Equal(suite.T(), http.StatusOK, listRec.Code)
		var favorites struct {
			Total int64 `json:"total"`
		}
		require.NoError(suite.T(), json.Unmarshal(listEnv.Data, &favorites))
		assert.Equal(suite.T(), int64(1), favorites.Total)
	})

	suite.Run("AnonymousGet_ShouldNotExposeFavoriteFlag", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")
		recipeID := suite.generateRecipe(token, "weeknight green curry")
		_, _ = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/favorite", recipeID), token, nil)

		// Act
		rec, env := suite.do(http.MethodGet, "/api/v1/recipes/"+recipeID, "", nil)

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var data struct {
			IsFavorited bool `json:"is_favorited"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
		assert.False(suite.T(), data.IsFavorited)
	})
}

func (suite *APITestSuite) TestVerificationFlow() {
	suite.Run("Verify_ShouldUpdateStatsAndTrending", func() {
		// Arrange
		suite.SetupTest()
		author := suite.register("author@example.com")
		cook := suite.register("cook@example.com")
		recipeID := suite.generateRecipe(author, "sourdough pancakes")

		// Act
		rec, env := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/verify", recipeID), cook, map[string]interface{}{
			"rating":                 4.5,
			"notes":                  "fluffy, will repeat",
			"would_make_again":       true,
			"execution_time_minutes": 25,
		})

		// Assert
		require.Equal(suite.T(), http.StatusCreated, rec.Code)
		var verified struct {
			Verification struct {
				ExecutionMinutes *int `json:"execution_time_minutes"`
			} `json:"verification"`
			VerifiedCount int     `json:"verified_count"`
			AvgRating     float64 `json:"avg_rating"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &verified))
		assert.Equal(suite.T(), 1, verified.VerifiedCount)
		assert.InDelta(suite.T(), 4.5, verified.AvgRating, 0.001)
		require.NotNil(suite.T(), verified.Verification.ExecutionMinutes)
		assert.Equal(suite.T(), 25, *verified.Verification.ExecutionMinutes)

		trendRec, trendEnv := suite.do(http.MethodGet, "/api/v1/recipes/trending", "", nil)
		require.Equal(suite.T(), http.StatusOK, trendRec.Code)
		var trending struct {
			Recipes []struct {
				ID        string  `json:"id"`
				AvgRating float64 `json:"avg_rating"`
			} `json:"recipes"`
		}
		require.NoError(suite.T(), json.Unmarshal(trendEnv.Data, &trending))
		require.Len(suite.T(), trending.Recipes, 1)
		assert.Equal(suite.T(), recipeID, trending.Recipes[0].ID)
	})

	suite.Run("RatingOutOfRange_ShouldFailValidation", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")
		recipeID := suite.generateRecipe(token, "sourdough pancakes")

		// Act
		rec, _ := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/verify", recipeID), token, map[string]interface{}{
			"rating": 5.5,
		})

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("ListForRecipe_ShouldIncludeSummary", func() {
		// Arrange
		suite.SetupTest()
		author := suite.register("author@example.com")
		cook := suite.register("cook@example.com")
		recipeID := suite.generateRecipe(author, "sourdough pancakes")
		_, _ = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/verify", recipeID), cook, map[string]interface{}{
			"rating":           4.0,
			"would_make_again": false,
		})

		// Act
		rec, env := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/recipes/%s/verifications", recipeID), "", nil)

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var data struct {
			Verifications []struct {
				Rating    float64 `json:"rating"`
				WouldMake bool    `json:"would_make_again"`
			} `json:"verifications"`
			Total       int64   `json:"total"`
			AvgRating   float64 `json:"avg_rating"`
			SuccessRate float64 `json:"success_rate"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
		assert.Equal(suite.T(), int64(1), data.Total)
		require.Len(suite.T(), data.Verifications, 1)
		assert.InDelta(suite.T(), 4.0, data.AvgRating, 0.001)
		assert.InDelta(suite.T(), 0.0, data.SuccessRate, 0.001)
	})

	suite.Run("ZeroThreshold_ShouldIncludeUnverifiedRecipes", func() {
		// Arrange
		suite.SetupTest()
		author := suite.register("author@example.com")
		suite.generateRecipe(author, "sourdough pancakes")

		// Act
		defaultRec, defaultEnv := suite.do(http.MethodGet, "/api/v1/recipes/trending", "", nil)
		zeroRec, zeroEnv := suite.do(http.MethodGet, "/api/v1/recipes/trending?min_verifications=0", "", nil)

		// Assert
		var listing struct {
			Total int64 `json:"total"`
		}
		require.Equal(suite.T(), http.StatusOK, defaultRec.Code)
		require.NoError(suite.T(), json.Unmarshal(defaultEnv.Data, &listing))
		assert.Zero(suite.T(), listing.Total)

		require.Equal(suite.T(), http.StatusOK, zeroRec.Code)
		require.NoError(suite.T(), json.Unmarshal(zeroEnv.Data, &listing))
		assert.Equal(suite.T(), int64(1), listing.Total)
	})
}

func (suite *APITestSuite) TestSearch() {
	suite.Run("Query_ShouldFilterByTitle", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")
		suite.generateRecipe(token, "midnight ramen bowl")
		suite.generateRecipe(token, "green salad")

		// Act
		rec, env := suite.do(http.MethodGet, "/api/v1/recipes/search?q=ramen", "", nil)

		// Assert
		require.Equal(suite.T(), http.StatusOK, rec.Code)
		var data struct {
			Total int64 `json:"total"`
		}
		require.NoError(suite.T(), json.Unmarshal(env.Data, &data))
		assert.Equal(suite.T(), int64(1), data.Total)
	})

	suite.Run("BadMinRating_ShouldFailValidation", func() {
		// Arrange
		suite.SetupTest()

		// Act
		rec, _ := suite.do(http.MethodGet, "/api/v1/recipes/search?min_rating=9", "", nil)

		// Assert
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})
}

func (suite *APITestSuite) TestCollections() {
	suite.Run("FullLifecycle_ShouldManageRecipes", func() {
		// Arrange
		suite.SetupTest()
		token := suite.register("cook@example.com")
		recipeID := suite.generateRecipe(token, "weeknight green curry")

		// Act
		createRec, createEnv := suite.do(http.MethodPost, "/api/v1/collections/", token, map[string]string{
			"name": "Weeknight dinners",
		})

		// Assert
		require.Equal(suite.T(), http.StatusCreated, createRec.Code)
		var created struct {
			ID    string `json:"id"`
			Color string `json:"color"`
		}
		require.NoError(suite.T(), json.Unmarshal(createEnv.Data, &created))
		assert.Equal(suite.T(), "#3B82F6", created.Color)

		addRec, _ := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/collections/%s/recipes/%s", created.ID, recipeID), token, nil)
		require.Equal(suite.T(), http.StatusOK, addRec.Code)

		listRec, listEnv := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/collections/%s/recipes", created.ID), token, nil)
		require.Equal(suite.T(), http.StatusOK, listRec.Code)
		var recipes struct {
			Total int64 `json:"total"`
		}
		require.NoError(suite.T(), json.Unmarshal(listEnv.Data, &recipes))
		assert.Equal(suite.T(), int64(1), recipes.Total)

		delRec, _ := suite.do(http.MethodDelete, "/api/v1/collections/"+created.ID, token, nil)
		require.Equal(suite.T(), http.StatusOK, delRec.Code)

		getRec, _ := suite.do(http.MethodGet, "/api/v1/collections/"+created.ID, token, nil)
		assert.Equal(suite.T(), http.StatusNotFound, getRec.Code)
	})

	suite.Run("ForeignCollection_ShouldBeHidden", func() {
		// Arrange
		suite.SetupTest()
		owner := suite.register("owner@example.com")
		stranger := suite.register("stranger@example.com")
		_, createEnv := suite.do(http.MethodPost, "/api/v1/collections/", owner, map[string]string{
			"name": "Private stash",
		})
		var created struct {
			ID string `json:"id"`
		}
		require.NoError(suite.T(), json.Unmarshal(createEnv.Data, &created))

		// Act
		rec, env := suite.do(http.MethodGet, "/api/v1/collections/"+created.ID, stranger, nil)

		// Assert
		assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
		assert.Equal(suite.T(), "COLLECTION_NOT_FOUND", env.Code)
	})
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
