package outbound

import "context"

// AIClient is the driven-side contract for the model provider that
// writes recipes. Implementations return the raw text completion; the
// application layer owns parsing and validation.
type AIClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
