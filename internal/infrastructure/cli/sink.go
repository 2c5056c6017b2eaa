package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/stevef00/cmdgen/internal/domain"
	"github.com/stevef00/cmdgen/internal/ports"
)

// Router delivers a generated command to exactly one sink. The tmux and xsel
// sinks shell out to the respective tools; when one fails the command falls
// back to standard output so it is never silently lost, with a warning on
// stderr unless quiet.
type Router struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool
	run    func(name string, args []string, input string) error
}

// NewRouter builds a router over the process's stdio.
func NewRouter(quiet bool) *Router {
	return &Router{
		stdout: os.Stdout,
		stderr: os.Stderr,
		quiet:  quiet,
		run:    runWithInput,
	}
}

// Deliver implements ports.CommandRouter.
func (r *Router) Deliver(command string, sink domain.Sink) error {
	switch sink {
	case domain.SinkTmux:
		r.deliverExternal(command, "tmux buffer", "tmux", "load-buffer", "-")
	case domain.SinkXsel:
		r.deliverExternal(command, "X11 clipboard", "xsel", "--input", "--clipboard")
	default:
		fmt.Fprintln(r.stdout, command)
	}
	return nil
}

func (r *Router) deliverExternal(command, label, name string, args ...string) {
	if err := r.run(name, args, command); err != nil {
		if !r.quiet {
			fmt.Fprintf(r.stderr, "warning: failed to copy to %s: %v\n", label, err)
		}
		fmt.Fprintln(r.stdout, command)
	}
}

func runWithInput(name string, args []string, input string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Run()
}

var _ ports.CommandRouter = (*Router)(nil)
