package domain

import "time"

// CommandRecord captures one generated command for the command log.
type CommandRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	Prompt           string    `json:"prompt"`
	Command          string    `json:"command"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
}
