// Package ai implements the command generation client against the remote
// responses API.
package ai

import (
	"strings"

	"github.com/stevef00/cmdgen/internal/domain"
)

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
}

type responsesResponse struct {
	Output []outputItem  `json:"output"`
	Usage  *usagePayload `json:"usage"`
}

type outputItem struct {
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Text string `json:"text"`
}

type usagePayload struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// OutputText returns the first non-empty text block across the response's
// output items.
func (r responsesResponse) OutputText() string {
	for _, item := range r.Output {
		for _, part := range item.Content {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}

// TokenUsage normalizes the usage counters. Missing usage yields all zeros;
// a missing total is derived from the two parts.
func (r responsesResponse) TokenUsage() domain.TokenUsage {
	if r.Usage == nil {
		return domain.TokenUsage{}
	}
	usage := domain.TokenUsage{
		PromptTokens:     r.Usage.PromptTokens,
		CompletionTokens: r.Usage.CompletionTokens,
		TotalTokens:      r.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}

// ExtractCommand reduces the model's text to a single shell command: code
// fences are dropped and the first remaining non-empty line wins. Anything
// after that line is discarded.
func ExtractCommand(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		return line
	}
	return ""
}
