// Package ai turns free-text prompts into validated recipe drafts by
// prompting a model provider and parsing its output.
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/domain/recipe"
	"github.com/foodml/recipelab/internal/ports/outbound"
)

// Generator orchestrates prompt building, the provider call and
// response parsing.
type Generator struct {
	client outbound.AIClient
	logger *zap.Logger
}

// NewGenerator creates a new recipe generator
func NewGenerator(client outbound.AIClient, logger *zap.Logger) *Generator {
	return &Generator{
		client: client,
		logger: logger,
	}
}

// Generate asks the provider for a recipe and returns the parsed
// draft. Provider failures and unparseable output surface as app
// errors carrying their taxonomy codes.
func (g *Generator) Generate(ctx context.Context, req ParseRequest) (*recipe.Draft, error) {
	g.logger.Info("generating recipe", zap.String("prompt", req.Prompt))

	raw, err := g.client.Complete(ctx, systemPrompt, buildUserPrompt(req.Prompt, req.Servings, req.CuisineType, req.DietaryTags))
	if err != nil {
		g.logger.Error("AI provider call failed", zap.Error(err))
		return nil, err
	}

	draft, err := ParseResponse(raw, req)
	if err != nil {
		g.logger.Error("failed to parse AI response", zap.Error(err))
		return nil, err
	}

	g.logger.Info("generated recipe", zap.String("title", draft.Title))
	return draft, nil
}
