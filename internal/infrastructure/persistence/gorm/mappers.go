package gorm

import (
	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
)

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID,
		UserID:          r.UserID,
		Title:           r.Title,
		Description:     r.Description,
		AIPrompt:        r.AIPrompt,
		Ingredients:     IngredientList(r.Ingredients),
		Instructions:    InstructionList(r.Instructions),
		EquipmentNeeded: StringSlice(r.EquipmentNeeded),
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
		Difficulty:      string(r.Difficulty),
		CuisineType:     r.CuisineType,
		DietaryTags:     StringSlice(r.DietaryTags),
		ChefNotes:       r.ChefNotes,
		VerifiedCount:   r.VerifiedCount,
		AvgRating:       r.AvgRating,
		GeneratedAt:     r.GeneratedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return &recipe.Recipe{
		ID:              m.ID,
		UserID:          m.UserID,
		Title:           m.Title,
		Description:     m.Description,
		AIPrompt:        m.AIPrompt,
		Ingredients:     []recipe.Ingredient(m.Ingredients),
		Instructions:    []recipe.Instruction(m.Instructions),
		EquipmentNeeded: []string(m.EquipmentNeeded),
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		Servings:        m.Servings,
		Difficulty:      recipe.Difficulty(m.Difficulty),
		CuisineType:     m.CuisineType,
		DietaryTags:     []string(m.DietaryTags),
		ChefNotes:       m.ChefNotes,
		VerifiedCount:   m.VerifiedCount,
		AvgRating:       m.AvgRating,
		GeneratedAt:     m.GeneratedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// UserToModel converts a domain user to its GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// VerificationToModel converts a domain verification to its GORM model
func VerificationToModel(v *verification.Verification) *VerificationModel {
	return &VerificationModel{
		ID:               v.ID,
		RecipeID:         v.RecipeID,
		UserID:           v.UserID,
		Rating:           v.Rating,
		Notes:            v.Notes,
		WouldMake:        v.WouldMake,
		ExecutionMinutes: v.ExecutionMinutes,
		VerifiedAt:       v.VerifiedAt,
	}
}

// ModelToVerification converts a GORM model to a domain verification
func ModelToVerification(m *VerificationModel) *verification.Verification {
	return &verification.Verification{
		ID:               m.ID,
		RecipeID:         m.RecipeID,
		UserID:           m.UserID,
		Rating:           m.Rating,
		Notes:            m.Notes,
		WouldMake:        m.WouldMake,
		ExecutionMinutes: m.ExecutionMinutes,
		VerifiedAt:       m.VerifiedAt,
	}
}

// CollectionToModel converts a domain collection to its GORM model
func CollectionToModel(c *collection.Collection) *CollectionModel {
	return &CollectionModel{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ModelToCollection converts a GORM model to a domain collection
func ModelToCollection(m *CollectionModel) *collection.Collection {
	return &collection.Collection{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
