package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the recipe aggregate
type RecipeTestSuite struct {
	suite.Suite
}

func validDraft() *Draft {
	prep := 10
	return &Draft{
		Title:       "Spaghetti Carbonara",
		Description: "A classic Roman pasta dish",
		AIPrompt:    "a classic carbonara",
		Ingredients: []Ingredient{
			{Item: "spaghetti", Amount: "400", Unit: "g"},
			{Item: "eggs", Amount: "4", Unit: "piece", Notes: "room temperature"},
		},
		Instructions: []Instruction{
			{Step: 1, Instruction: "Boil the pasta in salted water.", TimeMinutes: &prep},
			{Step: 2, Instruction: "Toss with the egg mixture off heat."},
		},
		Servings:    4,
		Difficulty:  DifficultyMedium,
		CuisineType: "Italian",
	}
}

func (suite *RecipeTestSuite) TestDraftValidation() {
	suite.Run("ValidDraft_ShouldPass", func() {
		// Arrange
		draft := validDraft()

		// Act
		err := draft.Validate()

		// Assert
		require.NoError(suite.T(), err)
	})

	suite.Run("EmptyTitle_ShouldFail", func() {
		// Arrange
		draft := validDraft()
		draft.Title = "   "

		// Act
		err := draft.Validate()

		// Assert
		assert.ErrorIs(suite.T(), err, ErrTitleRequired)
	})

	suite.Run("NoIngredients_ShouldFail", func() {
		// Arrange
		draft := validDraft()
		draft.Ingredients = nil

		// Act
		err := draft.Validate()

		// Assert
		assert.ErrorIs(suite.T(), err, ErrNoIngredients)
	})

	suite.Run("NoInstructions_ShouldFail", func() {
		// Arrange
		draft := validDraft()
		draft.Instructions = []Instruction{}

		// Act
		err := draft.Validate()

		// Assert
		assert.ErrorIs(suite.T(), err, ErrNoInstructions)
	})

	suite.Run("IngredientMissingUnit_ShouldFailWholeDraft", func() {
		// Arrange
		draft := validDraft()
		draft.Ingredients = append(draft.Ingredients, Ingredient{Item: "salt", Amount: "1"})

		// Act
		err := draft.Validate()

		// Assert
		assert.ErrorIs(suite.T(), err, ErrIngredientUnitRequired)
	})

	suite.Run("InstructionStepZero_ShouldFailWholeDraft", func() {
		// Arrange
		draft := validDraft()
		draft.Instructions = append(draft.Instructions, Instruction{Step: 0, Instruction: "stir"})

		// Act
		err := draft.Validate()

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInstructionStepInvalid)
	})
}

func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidDraft_ShouldMaterialize", func() {
		// Arrange
		draft := validDraft()
		userID := uuid.New()

		// Act
		rec, err := New(draft, userID)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), rec)

		assert.NotEqual(suite.T(), uuid.Nil, rec.ID)
		assert.Equal(suite.T(), userID, rec.UserID)
		assert.Equal(suite.T(), draft.Title, rec.Title)
		assert.Equal(suite.T(), draft.AIPrompt, rec.AIPrompt)
		assert.Zero(suite.T(), rec.VerifiedCount)
		assert.Zero(suite.T(), rec.AvgRating)
		assert.False(suite.T(), rec.GeneratedAt.IsZero())
	})

	suite.Run("ZeroServings_ShouldDefault", func() {
		// Arrange
		draft := validDraft()
		draft.Servings = 0

		// Act
		rec, err := New(draft, uuid.New())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), DefaultServings, rec.Servings)
	})

	suite.Run("NilSlices_ShouldNormalizeToEmpty", func() {
		// Arrange
		draft := validDraft()
		draft.EquipmentNeeded = nil
		draft.DietaryTags = nil

		// Act
		rec, err := New(draft, uuid.New())

		// Assert
		require.NoError(suite.T(), err)
		assert.NotNil(suite.T(), rec.EquipmentNeeded)
		assert.NotNil(suite.T(), rec.DietaryTags)
		assert.Empty(suite.T(), rec.EquipmentNeeded)
	})

	suite.Run("InvalidDraft_ShouldReturnError", func() {
		// Arrange
		draft := validDraft()
		draft.Title = ""

		// Act
		rec, err := New(draft, uuid.New())

		// Assert
		assert.Nil(suite.T(), rec)
		assert.ErrorIs(suite.T(), err, ErrTitleRequired)
	})
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}
