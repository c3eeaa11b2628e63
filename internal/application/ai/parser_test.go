package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// ParserTestSuite provides a test suite for the AI response parser
type ParserTestSuite struct {
	suite.Suite
	request ParseRequest
}

func (suite *ParserTestSuite) SetupTest() {
	suite.request = ParseRequest{
		Prompt:      "a quick garlic pasta",
		Servings:    2,
		CuisineType: "Italian",
		DietaryTags: []string{"vegetarian"},
	}
}

const validPayload = `{
	"title": "Garlic Pasta",
	"description": "Quick weeknight pasta.",
	"servings": 2,
	"prep_time_minutes": 10,
	"cook_time_minutes": 15,
	"difficulty": "easy",
	"cuisine_type": "Italian",
	"dietary_tags": ["vegetarian"],
	"ingredients": [
		{"item": "spaghetti", "amount": "200", "unit": "g"},
		{"item": "garlic", "amount": "3", "unit": "cloves", "notes": "minced"}
	],
	"instructions": [
		{"step": 1, "instruction": "Cook the pasta.", "time_minutes": 10},
		{"step": 2, "instruction": "Toss with garlic oil.", "tip": "Save some pasta water."}
	],
	"equipment_needed": ["large pot"],
	"chef_notes": "Finish with parsley."
}`

func (suite *ParserTestSuite) TestDirectJSON() {
	suite.Run("ValidDocument_ShouldParse", func() {
		// Act
		draft, err := ParseResponse(validPayload, suite.request)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Garlic Pasta", draft.Title)
		assert.Len(suite.T(), draft.Ingredients, 2)
		assert.Len(suite.T(), draft.Instructions, 2)
		assert.Equal(suite.T(), "minced", draft.Ingredients[1].Notes)
		require.NotNil(suite.T(), draft.Instructions[0].TimeMinutes)
		assert.Equal(suite.T(), 10, *draft.Instructions[0].TimeMinutes)
		assert.Equal(suite.T(), suite.request.Prompt, draft.AIPrompt)
	})

	suite.Run("MissingOptionalFields_ShouldFallBackToRequest", func() {
		// Arrange
		raw := `{
			"title": "",
			"ingredients": [{"item": "rice", "amount": "1", "unit": "cup"}],
			"instructions": [{"step": 1, "instruction": "Cook the rice."}]
		}`

		// Act
		draft, err := ParseResponse(raw, suite.request)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Untitled Recipe", draft.Title)
		assert.Equal(suite.T(), suite.request.Servings, draft.Servings)
		assert.Equal(suite.T(), suite.request.CuisineType, draft.CuisineType)
		assert.Equal(suite.T(), suite.request.DietaryTags, draft.DietaryTags)
		assert.NotNil(suite.T(), draft.EquipmentNeeded)
		assert.Empty(suite.T(), draft.EquipmentNeeded)
	})
}

func (suite *ParserTestSuite) TestFencedBlockFallback() {
	suite.Run("MarkdownWrapped_ShouldExtractAndParse", func() {
		// Arrange
		raw := "Here is your recipe:\n```json\n" + validPayload + "\n```\nEnjoy!"

		// Act
		draft, err := ParseResponse(raw, suite.request)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Garlic Pasta", draft.Title)
	})

	suite.Run("FencedBlockAlsoInvalid_ShouldFail", func() {
		// Arrange
		raw := "```json\n{not json at all\n```"

		// Act
		draft, err := ParseResponse(raw, suite.request)

		// Assert
		assert.Nil(suite.T(), draft)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeMalformedAI))
	})
}

func (suite *ParserTestSuite) TestMalformedOutput() {
	suite.Run("PlainProse_ShouldFailWithExcerpt", func() {
		// Arrange
		raw := strings.Repeat("Sorry, I cannot produce JSON today. ", 20)

		// Act
		draft, err := ParseResponse(raw, suite.request)

		// Assert
		assert.Nil(suite.T(), draft)
		appErr := apperrors.GetAppError(err)
		require.NotNil(suite.T(), appErr)
		assert.Equal(suite.T(), apperrors.CodeMalformedAI, appErr.Code)

		excerpt, ok := appErr.Metadata["excerpt"].(string)
		require.True(suite.T(), ok)
		assert.LessOrEqual(suite.T(), len(excerpt), 200)
	})

	suite.Run("InvalidIngredient_ShouldFailWholeParse", func() {
		// Arrange
		raw := `{
			"title": "Broken",
			"ingredients": [{"item": "", "amount": "1", "unit": "cup"}],
			"instructions": [{"step": 1, "instruction": "Stir."}]
		}`

		// Act
		draft, err := ParseResponse(raw, suite.request)

		// Assert
		assert.Nil(suite.T(), draft)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeMalformedAI))
	})

	suite.Run("EmptyInstructionList_ShouldFail", func() {
		// Arrange
		raw := `{
			"title": "No Steps",
			"ingredients": [{"item": "rice", "amount": "1", "unit": "cup"}],
			"instructions": []
		}`

		// Act
		_, err := ParseResponse(raw, suite.request)

		// Assert
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeMalformedAI))
	})
}

func TestParserTestSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}
