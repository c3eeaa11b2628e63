// Package anthropic provides the Anthropic messages API client used
// for recipe generation.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/foodml/recipelab/internal/infrastructure/config"
	"github.com/foodml/recipelab/internal/ports/outbound"
	apperrors "github.com/foodml/recipelab/pkg/errors"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1"
	apiVersion     = "2023-06-01"
)

// Client implements the AIClient port against the messages API.
type Client struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
	logger    *zap.Logger
}

// NewClient creates a new Anthropic client. The API key is read from
// config, falling back to the ANTHROPIC_API_KEY environment variable.
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.AIClient {
	apiKey := cfg.AI.AnthropicKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return &Client{
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		model:     cfg.AI.Model,
		maxTokens: cfg.AI.MaxTokens,
		client: &http.Client{
			Timeout: cfg.AI.Timeout,
		},
		logger: logger,
	}
}

// Anthropic API structures
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      usage          `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompts to the messages API and returns the raw
// text completion. Transport failures and non-2xx responses surface as
// retryable upstream errors.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewUpstreamAIError(errors.New("anthropic api key not configured"))
	}

	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: userPrompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode AI request").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build AI request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("anthropic request failed", zap.Error(err))
		return "", apperrors.NewUpstreamAIError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamAIError(err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			c.logger.Error("anthropic API error",
				zap.Int("status", resp.StatusCode),
				zap.String("type", apiErr.Error.Type),
			)
			return "", apperrors.NewUpstreamAIError(fmt.Errorf("anthropic: %s", apiErr.Error.Message))
		}
		return "", apperrors.NewUpstreamAIError(fmt.Errorf("anthropic: unexpected status %d", resp.StatusCode))
	}

	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperrors.NewUpstreamAIError(err)
	}
	if len(result.Content) == 0 {
		return "", apperrors.NewUpstreamAIError(errors.New("anthropic: empty response"))
	}

	c.logger.Debug("anthropic completion",
		zap.Int("input_tokens", result.Usage.InputTokens),
		zap.Int("output_tokens", result.Usage.OutputTokens),
		zap.String("stop_reason", result.StopReason),
	)

	var text string
	for _, block := range result.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
