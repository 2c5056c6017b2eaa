// Package cli wires the cobra commands and owns every terminal concern:
// the line editor, the sinks, and the renderer.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stevef00/cmdgen/internal/app"
	"github.com/stevef00/cmdgen/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(opts.Verbose)
	if err != nil {
		return nil, err
	}

	var (
		stats   bool
		tmux    bool
		xsel    bool
		quiet   bool
		prompt  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:   "cmdgen",
		Short: "Generate a shell command from natural language",
		Long: "cmdgen asks a language model for a single shell command matching your\n" +
			"request and prints it, copies it to a tmux buffer, or puts it on the\n" +
			"X11 clipboard. Without --prompt it reads interactively with recall over\n" +
			"previous prompts.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tmux && xsel {
				return fmt.Errorf("%w: --tmux and --xsel are mutually exclusive", domain.ErrConfig)
			}

			cfg := container.Config
			cfg.Quiet = cfg.Quiet || quiet
			cfg.ShowStats = stats
			if tmux {
				cfg.Sink = domain.SinkTmux
			}
			if xsel {
				cfg.Sink = domain.SinkXsel
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}

			if !cfg.Quiet {
				for _, warning := range container.Warnings {
					fmt.Fprintln(os.Stderr, "warning:", warning)
				}
			}

			session := container.Session
			session.Config = cfg
			session.Lines = NewPromptReader()
			session.Router = NewRouter(cfg.Quiet)
			session.Presenter = NewRenderer(cfg.Quiet)

			return session.Run(domain.SessionRequest{
				Context: cmd.Context(),
				Prompt:  prompt,
				Direct:  cmd.Flags().Changed("prompt"),
			})
		},
	}

	root.Flags().BoolVarP(&stats, "stats", "s", false, "Show token usage statistics")
	root.Flags().BoolVarP(&tmux, "tmux", "t", false, "Copy command to tmux paste buffer")
	root.Flags().BoolVarP(&xsel, "xsel", "x", false, "Copy command to X11 clipboard")
	root.Flags().StringVarP(&prompt, "prompt", "p", "", "Provide prompt directly (bypasses terminal input)")
	root.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output (no borders, no progress)")
	root.Flags().DurationVar(&timeout, "timeout", domain.DefaultTimeout, "API request timeout")

	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newDoctorCommand(container))
	return root, nil
}
