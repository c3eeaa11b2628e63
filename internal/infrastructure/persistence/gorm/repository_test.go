package gorm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	gormlogger "gorm.io/gorm/logger"

	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
	gormrepo "github.com/foodml/recipelab/internal/infrastructure/persistence/gorm"
	"github.com/foodml/recipelab/internal/infrastructure/persistence/sqlite"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
	"github.com/foodml/recipelab/test/testutils"
)

// RepositoryTestSuite exercises the GORM repositories against an
// in-memory SQLite database.
type RepositoryTestSuite struct {
	suite.Suite
	ctx           context.Context
	recipes       outbound.RecipeRepository
	users         outbound.UserRepository
	verifications outbound.VerificationRepository
	collections   outbound.CollectionRepository
	factory       *testutils.RecipeFactory
	owner         *user.User
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase("", gormlogger.Silent)
	require.NoError(suite.T(), err)

	suite.ctx = context.Background()
	suite.recipes = gormrepo.NewRecipeRepository(db)
	suite.users = gormrepo.NewUserRepository(db)
	suite.verifications = gormrepo.NewVerificationRepository(db)
	suite.collections = gormrepo.NewCollectionRepository(db)
	suite.factory = testutils.NewRecipeFactory(testutils.Seed())

	suite.owner = testutils.NewUserFactory(testutils.Seed()).User()
	require.NoError(suite.T(), suite.users.Create(suite.ctx, suite.owner))
}

func (suite *RepositoryTestSuite) seedRecipe(mutate func(*recipe.Recipe)) *recipe.Recipe {
	rec := suite.factory.Recipe(suite.owner.ID)
	if mutate != nil {
		mutate(rec)
	}
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, rec))
	return rec
}

func (suite *RepositoryTestSuite) seedUser(email string) *user.User {
	u, err := user.New(email, "$2a$04$notarealhashnotarealhashnotarealhash")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.users.Create(suite.ctx, u))
	return u
}

func (suite *RepositoryTestSuite) TestRecipeRoundTrip() {
	suite.Run("JSONColumns_ShouldSurviveStorage", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)

		// Act
		found, err := suite.recipes.FindByID(suite.ctx, rec.ID, nil)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), rec.Title, found.Title)
		assert.Equal(suite.T(), rec.Ingredients, found.Ingredients)
		assert.Equal(suite.T(), rec.Instructions, found.Instructions)
		assert.Equal(suite.T(), rec.DietaryTags, found.DietaryTags)
		assert.Equal(suite.T(), rec.EquipmentNeeded, found.EquipmentNeeded)
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		// Arrange
		suite.SetupTest()

		// Act
		_, err := suite.recipes.FindByID(suite.ctx, uuid.New(), nil)

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (suite *RepositoryTestSuite) TestSearch() {
	suite.Run("TextFilter_ShouldMatchTitleOrDescription", func() {
		// Arrange
		suite.SetupTest()
		suite.seedRecipe(func(r *recipe.Recipe) { r.Title = "Midnight Ramen" })
		suite.seedRecipe(func(r *recipe.Recipe) {
			r.Title = "Plain Toast"
			r.Description = "Goes well with ramen broth."
		})
		suite.seedRecipe(func(r *recipe.Recipe) {
			r.Title = "Green Salad"
			r.Description = "No noodles here."
		})

		// Act
		results, total, err := suite.recipes.Search(suite.ctx, outbound.SearchCriteria{Query: "RAMEN"}, nil, outbound.Page{Limit: 10})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(2), total)
		assert.Len(suite.T(), results, 2)
	})

	suite.Run("Filters_ShouldCombine", func() {
		// Arrange
		suite.SetupTest()
		suite.seedRecipe(func(r *recipe.Recipe) {
			r.CuisineType = "Japanese"
			r.Difficulty = "Easy"
		})
		suite.seedRecipe(func(r *recipe.Recipe) {
			r.CuisineType = "Japanese"
			r.Difficulty = "hard"
		})
		suite.seedRecipe(func(r *recipe.Recipe) {
			r.CuisineType = "Mexican"
			r.Difficulty = "easy"
		})

		// Act
		results, total, err := suite.recipes.Search(suite.ctx, outbound.SearchCriteria{
			Cuisine:    "japan",
			Difficulty: "EASY",
		}, nil, outbound.Page{Limit: 10})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(1), total)
		assert.Equal(suite.T(), "Japanese", results[0].CuisineType)
	})

	suite.Run("MinRating_ShouldOrderByRatingDesc", func() {
		// Arrange
		suite.SetupTest()
		low := suite.seedRecipe(nil)
		high := suite.seedRecipe(nil)
		mid := suite.seedRecipe(nil)
		require.NoError(suite.T(), suite.recipes.UpdateStats(suite.ctx, low.ID, verification.Stats{VerifiedCount: 1, AvgRating: 2.0}))
		require.NoError(suite.T(), suite.recipes.UpdateStats(suite.ctx, high.ID, verification.Stats{VerifiedCount: 1, AvgRating: 4.8}))
		require.NoError(suite.T(), suite.recipes.UpdateStats(suite.ctx, mid.ID, verification.Stats{VerifiedCount: 1, AvgRating: 3.5}))

		// Act
		results, total, err := suite.recipes.Search(suite.ctx, outbound.SearchCriteria{MinRating: 3.0}, nil, outbound.Page{Limit: 10})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(2), total)
		assert.Equal(suite.T(), high.ID, results[0].ID)
		assert.Equal(suite.T(), mid.ID, results[1].ID)
	})
}

func (suite *RepositoryTestSuite) TestTrending() {
	suite.Run("Threshold_ShouldExcludeUnverified", func() {
		// Arrange
		suite.SetupTest()
		popular := suite.seedRecipe(nil)
		fresh := suite.seedRecipe(nil)
		require.NoError(suite.T(), suite.recipes.UpdateStats(suite.ctx, popular.ID, verification.Stats{VerifiedCount: 3, AvgRating: 4.2}))

		// Act
		results, total, err := suite.recipes.FindTrending(suite.ctx, 1, nil, outbound.Page{Limit: 10})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(1), total)
		assert.Equal(suite.T(), popular.ID, results[0].ID)
		assert.NotEqual(suite.T(), fresh.ID, results[0].ID)
	})

	suite.Run("TiedRating_ShouldOrderByVerifiedCount", func() {
		// Arrange
		suite.SetupTest()
		lightlyCooked := suite.seedRecipe(nil)
		heavilyCooked := suite.seedRecipe(nil)
		require.NoError(suite.T(), suite.recipes.UpdateStats(suite.ctx, lightlyCooked.ID, verification.Stats{VerifiedCount: 2, AvgRating: 4.0}))
		require.NoError(suite.T(), suite.recipes.UpdateStats(suite.ctx, heavilyCooked.ID, verification.Stats{VerifiedCount: 9, AvgRating: 4.0}))

		// Act
		results, _, err := suite.recipes.FindTrending(suite.ctx, 2, nil, outbound.Page{Limit: 10})

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), results, 2)
		assert.Equal(suite.T(), heavilyCooked.ID, results[0].ID)
	})
}

func (suite *RepositoryTestSuite) TestToggleFavorite() {
	suite.Run("Twice_ShouldReturnToOriginalState", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)

		// Act
		first, err1 := suite.recipes.ToggleFavorite(suite.ctx, suite.owner.ID, rec.ID)
		second, err2 := suite.recipes.ToggleFavorite(suite.ctx, suite.owner.ID, rec.ID)

		// Assert
		require.NoError(suite.T(), err1)
		require.NoError(suite.T(), err2)
		assert.True(suite.T(), first)
		assert.False(suite.T(), second)

		found, err := suite.recipes.FindByID(suite.ctx, rec.ID, &suite.owner.ID)
		require.NoError(suite.T(), err)
		assert.False(suite.T(), found.IsFavorited)
	})

	suite.Run("Favorited_ShouldAppearInFavoritesList", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)
		suite.seedRecipe(nil)
		_, err := suite.recipes.ToggleFavorite(suite.ctx, suite.owner.ID, rec.ID)
		require.NoError(suite.T(), err)

		// Act
		favorites, total, err := suite.recipes.FindFavorites(suite.ctx, suite.owner.ID, outbound.Page{Limit: 10})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(1), total)
		require.Len(suite.T(), favorites, 1)
		assert.Equal(suite.T(), rec.ID, favorites[0].ID)
		assert.True(suite.T(), favorites[0].IsFavorited)
	})

	suite.Run("UnknownRecipe_ShouldReturnNotFound", func() {
		// Arrange
		suite.SetupTest()

		// Act
		_, err := suite.recipes.ToggleFavorite(suite.ctx, suite.owner.ID, uuid.New())

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (suite *RepositoryTestSuite) TestVerifications() {
	suite.Run("Create_ShouldRecomputeRecipeStats", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)
		cook := suite.seedUser("cook2@example.com")

		v1, err := verification.New(rec.ID, suite.owner.ID, 5.0, "perfect", true, nil)
		require.NoError(suite.T(), err)
		v2, err := verification.New(rec.ID, cook.ID, 4.0, "solid", true, nil)
		require.NoError(suite.T(), err)

		// Act
		_, err = suite.verifications.Create(suite.ctx, v1)
		require.NoError(suite.T(), err)
		stats, err := suite.verifications.Create(suite.ctx, v2)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, stats.VerifiedCount)
		assert.InDelta(suite.T(), 4.5, stats.AvgRating, 0.001)

		found, err := suite.recipes.FindByID(suite.ctx, rec.ID, nil)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, found.VerifiedCount)
		assert.InDelta(suite.T(), 4.5, found.AvgRating, 0.001)
	})

	suite.Run("UnknownRecipe_ShouldNotInsert", func() {
		// Arrange
		suite.SetupTest()
		v, err := verification.New(uuid.New(), suite.owner.ID, 4.0, "", true, nil)
		require.NoError(suite.T(), err)

		// Act
		_, err = suite.verifications.Create(suite.ctx, v)

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))

		_, total, listErr := suite.verifications.FindByUser(suite.ctx, suite.owner.ID, outbound.Page{Limit: 10})
		require.NoError(suite.T(), listErr)
		assert.Zero(suite.T(), total)
	})

	suite.Run("RatingSummary_ShouldCountWouldMakeAgain", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)
		keen := suite.seedUser("keen@example.com")
		lukewarm := suite.seedUser("lukewarm@example.com")

		for _, entry := range []struct {
			userID    uuid.UUID
			rating    float64
			wouldMake bool
		}{
			{suite.owner.ID, 5.0, true},
			{keen.ID, 4.0, true},
			{lukewarm.ID, 2.0, false},
		} {
			v, err := verification.New(rec.ID, entry.userID, entry.rating, "", entry.wouldMake, nil)
			require.NoError(suite.T(), err)
			_, err = suite.verifications.Create(suite.ctx, v)
			require.NoError(suite.T(), err)
		}

		// Act
		wouldMake, total, avg, err := suite.verifications.RatingSummary(suite.ctx, rec.ID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(2), wouldMake)
		assert.Equal(suite.T(), int64(3), total)
		assert.InDelta(suite.T(), 3.67, avg, 0.001)
	})
}

func (suite *RepositoryTestSuite) TestCollections() {
	suite.Run("AddRecipe_ShouldBeIdempotent", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)
		col, err := collection.New(suite.owner.ID, "Weeknight", "", "")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), suite.collections.Create(suite.ctx, col))

		// Act
		err1 := suite.collections.AddRecipe(suite.ctx, col.ID, rec.ID)
		err2 := suite.collections.AddRecipe(suite.ctx, col.ID, rec.ID)

		// Assert
		require.NoError(suite.T(), err1)
		require.NoError(suite.T(), err2)

		found, err := suite.collections.FindByID(suite.ctx, col.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, found.RecipeCount)
	})

	suite.Run("Delete_ShouldRemoveLinksButKeepRecipes", func() {
		// Arrange
		suite.SetupTest()
		rec := suite.seedRecipe(nil)
		col, err := collection.New(suite.owner.ID, "Short lived", "", "")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), suite.collections.Create(suite.ctx, col))
		require.NoError(suite.T(), suite.collections.AddRecipe(suite.ctx, col.ID, rec.ID))

		// Act
		err = suite.collections.Delete(suite.ctx, col.ID)

		// Assert
		require.NoError(suite.T(), err)
		_, err = suite.collections.FindByID(suite.ctx, col.ID)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeCollectionNotFound))

		_, err = suite.recipes.FindByID(suite.ctx, rec.ID, nil)
		assert.NoError(suite.T(), err)
	})

	suite.Run("AddUnknownRecipe_ShouldReturnNotFound", func() {
		// Arrange
		suite.SetupTest()
		col, err := collection.New(suite.owner.ID, "Ghost recipes", "", "")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), suite.collections.Create(suite.ctx, col))

		// Act
		err = suite.collections.AddRecipe(suite.ctx, col.ID, uuid.New())

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (suite *RepositoryTestSuite) TestUsers() {
	suite.Run("DuplicateEmail_ShouldConflict", func() {
		// Arrange
		suite.SetupTest()
		first := suite.seedUser("dup@example.com")

		// Act
		dup, err := user.New(first.Email, "$2a$04$notarealhashnotarealhashnotarealhash")
		require.NoError(suite.T(), err)
		err = suite.users.Create(suite.ctx, dup)

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeEmailAlreadyExists))
	})

	suite.Run("FindByEmail_ShouldNormalizeLookup", func() {
		// Arrange
		suite.SetupTest()
		created := suite.seedUser("mixed@example.com")

		// Act
		found, err := suite.users.FindByEmail(suite.ctx, "  Mixed@Example.COM ")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), created.ID, found.ID)
	})
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
