package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/ports"
)

// Renderer prints decoration in a friendly, ASCII-only format. Everything
// goes to stderr so standard output carries nothing but the command itself;
// quiet mode suppresses all of it.
type Renderer struct {
	out   io.Writer
	quiet bool
}

// NewRenderer builds a renderer over stderr.
func NewRenderer(quiet bool) *Renderer {
	return &Renderer{out: os.Stderr, quiet: quiet}
}

// ShowCommand prints the generated command panel.
func (r *Renderer) ShowCommand(command string) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, "Generated Command:")
	fmt.Fprintf(r.out, "  %s\n", command)
}

// ShowStats prints the token usage counters.
func (r *Renderer) ShowStats(usage domain.TokenUsage) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, "Token Usage:")
	fmt.Fprintf(r.out, "  Prompt tokens:     %d\n", usage.PromptTokens)
	fmt.Fprintf(r.out, "  Completion tokens: %d\n", usage.CompletionTokens)
	fmt.Fprintf(r.out, "  Total tokens:      %d\n", usage.TotalTokens)
}

// Progress starts a spinner with the given message and returns its stop
// function. In quiet mode it is a no-op.
func (r *Renderer) Progress(message string) func() {
	if r.quiet {
		return func() {}
	}
	spinner := NewSpinner(r.out, message)
	spinner.Start()
	return spinner.Stop
}

var _ ports.Presenter = (*Renderer)(nil)
