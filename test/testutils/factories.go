// Package testutils provides test data factories and repository mocks
// for consistent test data generation.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// ValidDraft returns a draft that passes validation
func (f *RecipeFactory) ValidDraft() *recipe.Draft {
	prep := f.faker.Number(5, 30)
	cook := f.faker.Number(10, 60)

	return &recipe.Draft{
		Title:       f.faker.Sentence(3),
		Description: f.faker.Sentence(8),
		AIPrompt:    f.faker.Sentence(5),
		Ingredients: []recipe.Ingredient{
			{Item: f.faker.Fruit(), Amount: "2", Unit: "cups"},
			{Item: f.faker.Vegetable(), Amount: "1", Unit: "piece", Notes: "diced"},
		},
		Instructions: []recipe.Instruction{
			{Step: 1, Instruction: f.faker.Sentence(6), TimeMinutes: &prep},
			{Step: 2, Instruction: f.faker.Sentence(6), Tip: f.faker.Sentence(4)},
		},
		EquipmentNeeded: []string{"large pot"},
		PrepTimeMinutes: &prep,
		CookTimeMinutes: &cook,
		Servings:        f.faker.Number(1, 8),
		Difficulty:      recipe.DifficultyMedium,
		CuisineType:     "Italian",
		DietaryTags:     []string{"vegetarian"},
		ChefNotes:       f.faker.Sentence(6),
	}
}

// Recipe returns a persisted-shape recipe owned by userID
func (f *RecipeFactory) Recipe(userID uuid.UUID) *recipe.Recipe {
	rec, err := recipe.New(f.ValidDraft(), userID)
	if err != nil {
		panic(err)
	}
	return rec
}

// UserFactory provides methods to create test users
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a new user factory with seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{
		faker: gofakeit.New(seed),
	}
}

// User returns a user with a fake email and placeholder hash
func (f *UserFactory) User() *user.User {
	u, err := user.New(f.faker.Email(), "$2a$04$notarealhashnotarealhashnotarealhash")
	if err != nil {
		panic(err)
	}
	return u
}

// VerificationFactory provides methods to create test verifications
type VerificationFactory struct {
	faker *gofakeit.Faker
}

// NewVerificationFactory creates a new verification factory
func NewVerificationFactory(seed int64) *VerificationFactory {
	return &VerificationFactory{
		faker: gofakeit.New(seed),
	}
}

// Verification returns a valid verification for the given recipe and user
func (f *VerificationFactory) Verification(recipeID, userID uuid.UUID) *verification.Verification {
	minutes := f.faker.Number(5, 120)
	v, err := verification.New(
		recipeID,
		userID,
		float64(f.faker.Number(1, 5)),
		f.faker.Sentence(5),
		f.faker.Bool(),
		&minutes,
	)
	if err != nil {
		panic(err)
	}
	return v
}

// Seed returns a deterministic seed for suites that want
// reproducibility within a run.
func Seed() int64 {
	return time.Now().UnixNano()
}
