// Package ports defines the interfaces between the session controller and
// its adapters. Concrete implementations live in the infrastructure layer so
// the controller stays independent of HTTP clients, terminals, and storage.
package ports

import (
	"context"

	"github.com/stevef00/cmdgen/internal/domain"
)

// HistoryStore is the durable, bounded, ordered record of past prompts.
type HistoryStore interface {
	// Append adds prompt at the end and trims the store to its cap.
	Append(prompt string) error
	// Load returns the stored prompts oldest-first. A missing store is a
	// normal empty state, not an error.
	Load() ([]string, error)
}

// LineSource collects one prompt from a human, with recall navigation over
// the supplied history. It returns domain.ErrNoInput when input ends with
// nothing typed.
type LineSource interface {
	ReadPrompt(cue string, history []string) (string, error)
}

// Generator turns a prompt into a shell command via the remote API.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// CommandRouter delivers a generated command to exactly one sink, falling
// back to standard output when an external sink is unavailable.
type CommandRouter interface {
	Deliver(command string, sink domain.Sink) error
}

// Presenter renders decoration around the pipeline: the command panel, token
// usage, and progress indication. Implementations suppress all output in
// quiet mode.
type Presenter interface {
	ShowCommand(command string)
	ShowStats(usage domain.TokenUsage)
	// Progress starts a progress indicator and returns its stop function.
	Progress(message string) func()
}

// CommandLog records generated commands for later inspection. Failures are
// best-effort and never abort a session.
type CommandLog interface {
	Save(rec domain.CommandRecord) error
	Records(limit int, search string) ([]domain.CommandRecord, error)
	Clear() error
	ExportJSON(dest string) error
}

// Logger provides leveled logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
