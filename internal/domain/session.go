package domain

import "context"

// SessionRequest captures user intent for a single run.
type SessionRequest struct {
	Context context.Context
	// Prompt holds the direct prompt text when Direct is true. When Direct is
	// false the prompt is collected interactively.
	Prompt string
	Direct bool
}

// GenerationRequest pairs the user's prompt with the fixed developer
// instruction and model identifier. Immutable once built.
type GenerationRequest struct {
	Prompt          string
	DeveloperPrompt string
	Model           string
}

// TokenUsage holds the counters reported by the generation API.
// All counters are zero when the API omits usage data.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerationResult is the outcome of one successful API call. Command is
// never empty; a degenerate response is surfaced as an error instead.
type GenerationResult struct {
	Command string
	Usage   TokenUsage
}
