// Package collection models user-curated groupings of recipes.
package collection

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNameRequired = errors.New("collection name is required")
	ErrInvalidColor = errors.New("color must be a hex value like #3B82F6")
)

// DefaultColor is applied when a collection is created without one.
const DefaultColor = "#3B82F6"

const MaxNameLength = 100

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Collection is a named, colored set of recipes owned by a user.
type Collection struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// RecipeCount is populated on reads, not persisted.
	RecipeCount int
}

// New validates inputs and materializes a collection. An empty color
// falls back to DefaultColor.
func New(userID uuid.UUID, name, description, color string) (*Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameRequired
	}
	if color == "" {
		color = DefaultColor
	}
	if !colorPattern.MatchString(color) {
		return nil, ErrInvalidColor
	}
	now := time.Now().UTC()
	return &Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies a partial edit. Nil fields are left untouched.
func (c *Collection) Update(name, description, color *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" || len(n) > MaxNameLength {
			return ErrNameRequired
		}
		c.Name = n
	}
	if description != nil {
		c.Description = *description
	}
	if color != nil {
		if !colorPattern.MatchString(*color) {
			return ErrInvalidColor
		}
		c.Color = *color
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// CollectionRecipe links a recipe into a collection. The pair is
// unique; re-adding is a no-op at the persistence layer.
type CollectionRecipe struct {
	CollectionID uuid.UUID
	RecipeID     uuid.UUID
	AddedAt      time.Time
}
