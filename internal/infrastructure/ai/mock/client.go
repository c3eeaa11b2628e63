// Package mock provides a deterministic AI client for development and
// tests, so the app runs without an API key.
package mock

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/foodml/recipelab/internal/ports/outbound"
)

// Client returns a canned recipe completion derived from the prompt.
type Client struct{}

// NewClient creates a new mock AI client
func NewClient() outbound.AIClient {
	return &Client{}
}

// Complete returns a valid recipe JSON document. The title echoes the
// user prompt so generated recipes are distinguishable.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	title := strings.TrimSpace(userPrompt)
	if idx := strings.Index(title, "\n"); idx > 0 {
		title = title[:idx]
	}
	title = strings.TrimPrefix(title, "Generate a recipe for: ")
	if len(title) > 60 {
		title = title[:60]
	}
	if title == "" {
		title = "Untitled Recipe"
	}

	payload := map[string]interface{}{
		"title":       title,
		"description": "A simple dish assembled from pantry staples.",
		"ingredients": []map[string]interface{}{
			{"item": "olive oil", "amount": "2", "unit": "tbsp", "notes": ""},
			{"item": "garlic", "amount": "3", "unit": "cloves", "notes": "minced"},
			{"item": "pasta", "amount": "400", "unit": "g", "notes": ""},
		},
		"instructions": []map[string]interface{}{
			{"step": 1, "instruction": "Boil salted water and cook the pasta until al dente.", "time_minutes": 10, "tip": "Reserve a cup of pasta water."},
			{"step": 2, "instruction": "Warm the oil, soften the garlic, then toss with the pasta.", "time_minutes": 5, "tip": ""},
		},
		"equipment_needed":  []string{"large pot", "skillet"},
		"prep_time_minutes": 10,
		"cook_time_minutes": 15,
		"difficulty":        "easy",
		"chef_notes":        "Finish with grated cheese if available.",
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
