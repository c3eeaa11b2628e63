package ai

import (
	"encoding/json"
	"strings"

	"github.com/foodml/recipelab/internal/domain/recipe"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

// recipePayload is the wire format the model is instructed to emit.
type recipePayload struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Servings        int                  `json:"servings"`
	PrepTimeMinutes *int                 `json:"prep_time_minutes"`
	CookTimeMinutes *int                 `json:"cook_time_minutes"`
	Difficulty      string               `json:"difficulty"`
	CuisineType     string               `json:"cuisine_type"`
	DietaryTags     []string             `json:"dietary_tags"`
	Ingredients     []recipe.Ingredient  `json:"ingredients"`
	Instructions    []recipe.Instruction `json:"instructions"`
	EquipmentNeeded []string             `json:"equipment_needed"`
	ChefNotes       string               `json:"chef_notes"`
}

// ParseRequest carries the generation request fields used to fill
// gaps the model left in its output.
type ParseRequest struct {
	Prompt      string
	Servings    int
	CuisineType string
	DietaryTags []string
}

// ParseResponse turns a raw model completion into a validated recipe
// draft. Models sometimes wrap the document in a fenced code block
// despite instructions, so a failed parse retries once on the
// extracted block before giving up.
func ParseResponse(raw string, req ParseRequest) (*recipe.Draft, error) {
	var payload recipePayload

	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		block, ok := extractFencedJSON(raw)
		if !ok {
			return nil, apperrors.NewMalformedAIError(raw)
		}
		if err := json.Unmarshal([]byte(block), &payload); err != nil {
			return nil, apperrors.NewMalformedAIError(raw)
		}
	}

	draft := payloadToDraft(&payload, req)
	if err := draft.Validate(); err != nil {
		return nil, apperrors.NewMalformedAIError(raw).WithCause(err)
	}
	return draft, nil
}

// extractFencedJSON pulls the body of the first ```json code block.
func extractFencedJSON(raw string) (string, bool) {
	start := strings.Index(raw, "```json")
	if start < 0 {
		return "", false
	}
	start += len("```json")
	end := strings.Index(raw[start:], "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(raw[start : start+end]), true
}

// payloadToDraft applies the fallback rules: missing title, servings,
// cuisine and dietary tags fall back to the request, missing equipment
// becomes an empty list.
func payloadToDraft(p *recipePayload, req ParseRequest) *recipe.Draft {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Untitled Recipe"
	}

	servings := p.Servings
	if servings == 0 {
		servings = req.Servings
	}

	cuisine := p.CuisineType
	if cuisine == "" {
		cuisine = req.CuisineType
	}

	tags := p.DietaryTags
	if tags == nil {
		tags = req.DietaryTags
	}

	equipment := p.EquipmentNeeded
	if equipment == nil {
		equipment = []string{}
	}

	return &recipe.Draft{
		Title:           title,
		Description:     p.Description,
		AIPrompt:        req.Prompt,
		Ingredients:     p.Ingredients,
		Instructions:    p.Instructions,
		EquipmentNeeded: equipment,
		PrepTimeMinutes: p.PrepTimeMinutes,
		CookTimeMinutes: p.CookTimeMinutes,
		Servings:        servings,
		Difficulty:      recipe.Difficulty(p.Difficulty),
		CuisineType:     cuisine,
		DietaryTags:     tags,
		ChefNotes:       p.ChefNotes,
	}
}
