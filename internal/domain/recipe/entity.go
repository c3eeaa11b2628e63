// Package recipe contains the core domain model for AI-generated recipes.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the free-form difficulty label produced by the AI.
// The canonical values are easy, medium and hard, but the value is
// stored as-is and matched case-insensitively in search.
type Difficulty = string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultServings is used when neither the AI output nor the
// generation request specifies a serving count.
const DefaultServings = 4

// Ingredient is one entry of a recipe's ingredient list. It is
// persisted as JSON and must round-trip through this exact shape.
type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// Validate checks the required ingredient fields.
func (i Ingredient) Validate() error {
	if i.Item == "" {
		return ErrIngredientItemRequired
	}
	if i.Amount == "" {
		return ErrIngredientAmountRequired
	}
	if i.Unit == "" {
		return ErrIngredientUnitRequired
	}
	return nil
}

// Instruction is one step of a recipe's instruction list. It is
// persisted as JSON and must round-trip through this exact shape.
type Instruction struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
	TimeMinutes *int   `json:"time_minutes,omitempty"`
	Tip         string `json:"tip,omitempty"`
}

// Validate checks the required instruction fields.
func (i Instruction) Validate() error {
	if i.Step < 1 {
		return ErrInstructionStepInvalid
	}
	if i.Instruction == "" {
		return ErrInstructionTextRequired
	}
	return nil
}

// Recipe is the aggregate for a stored, AI-generated recipe.
// VerifiedCount and AvgRating are rolling aggregates recomputed from
// the recipe's full verification set; they are never maintained
// incrementally.
type Recipe struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Title           string
	Description     string
	AIPrompt        string
	Ingredients     []Ingredient
	Instructions    []Instruction
	EquipmentNeeded []string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Servings        int
	Difficulty      Difficulty
	CuisineType     string
	DietaryTags     []string
	ChefNotes       string
	VerifiedCount   int
	AvgRating       float64
	GeneratedAt     time.Time
	UpdatedAt       time.Time

	// IsFavorited is a per-viewer flag, populated for the requesting
	// user; it is not a persisted column.
	IsFavorited bool
}

// Draft is a validated recipe-creation record, the output of the AI
// parsing pipeline. It carries the original prompt for auditability
// and regeneration.
type Draft struct {
	Title           string
	Description     string
	AIPrompt        string
	Ingredients     []Ingredient
	Instructions    []Instruction
	EquipmentNeeded []string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Servings        int
	Difficulty      Difficulty
	CuisineType     string
	DietaryTags     []string
	ChefNotes       string
}

// Validate checks the draft as a whole. A single malformed ingredient
// or instruction fails the entire draft; partial recipes are never
// persisted.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if len(d.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if len(d.Instructions) == 0 {
		return ErrNoInstructions
	}
	for _, ing := range d.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	for _, inst := range d.Instructions {
		if err := inst.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// New materializes a draft into a Recipe owned by the given user.
func New(draft *Draft, userID uuid.UUID) (*Recipe, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	servings := draft.Servings
	if servings <= 0 {
		servings = DefaultServings
	}

	equipment := draft.EquipmentNeeded
	if equipment == nil {
		equipment = []string{}
	}
	tags := draft.DietaryTags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	return &Recipe{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           draft.Title,
		Description:     draft.Description,
		AIPrompt:        draft.AIPrompt,
		Ingredients:     draft.Ingredients,
		Instructions:    draft.Instructions,
		EquipmentNeeded: equipment,
		PrepTimeMinutes: draft.PrepTimeMinutes,
		CookTimeMinutes: draft.CookTimeMinutes,
		Servings:        servings,
		Difficulty:      draft.Difficulty,
		CuisineType:     draft.CuisineType,
		DietaryTags:     tags,
		ChefNotes:       draft.ChefNotes,
		GeneratedAt:     now,
		UpdatedAt:       now,
	}, nil
}
