// Package gorm provides GORM model definitions and repository
// implementations backing the outbound persistence ports.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foodml/recipelab/internal/domain/recipe"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time

	// Relationships
	Recipes []RecipeModel `gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index"`
	Title       string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	AIPrompt    string    `gorm:"type:text"`

	// Recipe details
	Ingredients     IngredientList  `gorm:"type:json"`
	Instructions    InstructionList `gorm:"type:json"`
	EquipmentNeeded StringSlice     `gorm:"type:json"`

	// Timing (stored in minutes)
	PrepTimeMinutes *int `gorm:"column:prep_time_minutes"`
	CookTimeMinutes *int `gorm:"column:cook_time_minutes"`

	// Categorization
	Servings    int         `gorm:"default:4"`
	Difficulty  string      `gorm:"type:varchar(20);index"`
	CuisineType string      `gorm:"type:varchar(50);index"`
	DietaryTags StringSlice `gorm:"type:json"`
	ChefNotes   string      `gorm:"type:text"`

	// Denormalized rating stats, recomputed on verification
	VerifiedCount int     `gorm:"default:0;index"`
	AvgRating     float64 `gorm:"default:0;index"`

	GeneratedAt time.Time `gorm:"index"`
	UpdatedAt   time.Time

	// Relationships
	User          UserModel           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Verifications []VerificationModel `gorm:"foreignKey:RecipeID"`
}

func (RecipeModel) TableName() string { return "recipes" }

// FavoriteModel represents the GORM model for per-user favorite marks
type FavoriteModel struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// Relationships
	User   UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (FavoriteModel) TableName() string { return "favorites" }

// VerificationModel represents the GORM model for cook-through feedback
type VerificationModel struct {
	ID               uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID         uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID           uuid.UUID `gorm:"type:char(36);not null;index"`
	Rating           float64   `gorm:"not null;check:rating >= 1.0 AND rating <= 5.0"`
	Notes            string    `gorm:"type:text"`
	WouldMake        bool      `gorm:"default:true"`
	ExecutionMinutes *int      `gorm:"column:execution_time_minutes"`
	VerifiedAt       time.Time `gorm:"index"`

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (VerificationModel) TableName() string { return "verifications" }

// CollectionModel represents the GORM model for recipe collections
type CollectionModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"type:varchar(7);default:'#3B82F6'"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	// Relationships
	User    UserModel               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipes []CollectionRecipeModel `gorm:"foreignKey:CollectionID"`
}

func (CollectionModel) TableName() string { return "collections" }

// CollectionRecipeModel represents the GORM model for recipes in collections
type CollectionRecipeModel struct {
	CollectionID uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	AddedAt      time.Time `gorm:"index"`

	// Relationships
	Collection CollectionModel `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	Recipe     RecipeModel     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (CollectionRecipeModel) TableName() string { return "collection_recipes" }

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

// IngredientList stores the ingredient list as a JSON column so the
// wire format round-trips through the database unchanged.
type IngredientList []recipe.Ingredient

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]recipe.Ingredient{})
	}
	return json.Marshal([]recipe.Ingredient(l))
}

// InstructionList stores the instruction list as a JSON column.
type InstructionList []recipe.Instruction

// Scan implements the sql.Scanner interface
func (l *InstructionList) Scan(value interface{}) error {
	if value == nil {
		*l = InstructionList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into InstructionList", value)
	}
}

// Value implements the driver.Valuer interface
func (l InstructionList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]recipe.Instruction{})
	}
	return json.Marshal([]recipe.Instruction(l))
}

// AllModels returns every model for auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&RecipeModel{},
		&FavoriteModel{},
		&VerificationModel{},
		&CollectionModel{},
		&CollectionRecipeModel{},
	}
}
