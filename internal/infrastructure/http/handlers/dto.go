package handlers

import (
	"time"

	"github.com/foodml/recipelab/internal/domain/collection"
	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/domain/user"
	"github.com/foodml/recipelab/internal/domain/verification"
	"github.com/foodml/recipelab/internal/ports/inbound"
)

// recipeResponse is the wire representation of a recipe
type recipeResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	AIPrompt        string               `json:"ai_prompt,omitempty"`
	Ingredients     []recipe.Ingredient  `json:"ingredients"`
	Instructions    []recipe.Instruction `json:"instructions"`
	EquipmentNeeded []string             `json:"equipment_needed"`
	PrepTimeMinutes *int                 `json:"prep_time_minutes"`
	CookTimeMinutes *int                 `json:"cook_time_minutes"`
	Servings        int                  `json:"servings"`
	Difficulty      string               `json:"difficulty"`
	CuisineType     string               `json:"cuisine_type"`
	DietaryTags     []string             `json:"dietary_tags"`
	ChefNotes       string               `json:"chef_notes,omitempty"`
	VerifiedCount   int                  `json:"verified_count"`
	AvgRating       float64              `json:"avg_rating"`
	IsFavorited     bool                 `json:"is_favorited"`
	GeneratedAt     time.Time            `json:"generated_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func toRecipeResponse(r *recipe.Recipe) recipeResponse {
	return recipeResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Title:           r.Title,
		Description:     r.Description,
		AIPrompt:        r.AIPrompt,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		EquipmentNeeded: r.EquipmentNeeded,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
		Difficulty:      string(r.Difficulty),
		CuisineType:     r.CuisineType,
		DietaryTags:     r.DietaryTags,
		ChefNotes:       r.ChefNotes,
		VerifiedCount:   r.VerifiedCount,
		AvgRating:       r.AvgRating,
		IsFavorited:     r.IsFavorited,
		GeneratedAt:     r.GeneratedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// recipeListResponse is a paginated page of recipes
type recipeListResponse struct {
	Recipes  []recipeResponse `json:"recipes"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

func toRecipeListResponse(list *inbound.RecipeList) recipeListResponse {
	recipes := make([]recipeResponse, len(list.Recipes))
	for i, r := range list.Recipes {
		recipes[i] = toRecipeResponse(r)
	}
	return recipeListResponse{
		Recipes:  recipes,
		Total:    list.Total,
		Page:     list.Page,
		PageSize: list.PageSize,
	}
}

// userResponse is the wire representation of a user profile
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// verificationResponse is the wire representation of a verification
type verificationResponse struct {
	ID               string    `json:"id"`
	RecipeID         string    `json:"recipe_id"`
	UserID           string    `json:"user_id"`
	Rating           float64   `json:"rating"`
	Notes            string    `json:"notes,omitempty"`
	WouldMake        bool      `json:"would_make_again"`
	ExecutionMinutes *int      `json:"execution_time_minutes,omitempty"`
	VerifiedAt       time.Time `json:"verified_at"`
}

func toVerificationResponse(v *verification.Verification) verificationResponse {
	return verificationResponse{
		ID:               v.ID.String(),
		RecipeID:         v.RecipeID.String(),
		UserID:           v.UserID.String(),
		Rating:           v.Rating,
		Notes:            v.Notes,
		WouldMake:        v.WouldMake,
		ExecutionMinutes: v.ExecutionMinutes,
		VerifiedAt:       v.VerifiedAt,
	}
}

// collectionResponse is the wire representation of a collection
type collectionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	RecipeCount int       `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCollectionResponse(c *collection.Collection) collectionResponse {
	return collectionResponse{
		ID:          c.ID.String(),
		UserID:      c.UserID.String(),
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		RecipeCount: c.RecipeCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
