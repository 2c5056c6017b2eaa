// Package domain defines core entities and value objects for cmdgen.
//
// The domain layer is independent of infrastructure concerns and represents
// pure data structures shared between the session controller and its adapters.
package domain

import "time"

// Sink identifies the destination for a generated command.
type Sink string

const (
	SinkStdout Sink = "stdout"
	SinkTmux   Sink = "tmux"
	SinkXsel   Sink = "xsel"
)

// Defaults applied when neither config file nor environment provide a value.
const (
	DefaultModel      = "gpt-4o"
	DefaultAPIURL     = "https://api.openai.com/v1/responses"
	DefaultMaxHistory = 1000
	DefaultTimeout    = 60 * time.Second

	DefaultDeveloperPrompt = "Output a shell command to satisfy the user prompt. " +
		"Do not include any markdown in the output, just the command. " +
		"Assume bash shell unless the user specifies otherwise."
)

// SessionConfig is the resolved configuration for one invocation.
// It is built once at startup and shared read-only by every component;
// nothing reads the environment after construction.
type SessionConfig struct {
	APIKey          string
	APIKeyPath      string
	APIURL          string
	Model           string
	DeveloperPrompt string
	HistoryFile     string
	MaxHistory      int
	CommandLogPath  string
	Quiet           bool
	Sink            Sink
	ShowStats       bool
	Timeout         time.Duration
}
