package recipe

import "errors"

// Domain errors for recipe validation

var (
	ErrTitleRequired            = errors.New("recipe title is required")
	ErrNoIngredients            = errors.New("recipe must have at least one ingredient")
	ErrNoInstructions           = errors.New("recipe must have at least one instruction")
	ErrIngredientItemRequired   = errors.New("ingredient item is required")
	ErrIngredientAmountRequired = errors.New("ingredient amount is required")
	ErrIngredientUnitRequired   = errors.New("ingredient unit is required")
	ErrInstructionStepInvalid   = errors.New("instruction step must be at least 1")
	ErrInstructionTextRequired  = errors.New("instruction text is required")
)
