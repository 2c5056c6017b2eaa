package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stevef00/cmdgen/internal/app"
)

const defaultHistoryLimit = 20

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the generated command log",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)
	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently generated commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCommandRecords(cmd.OutOrStdout(), container, limit, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var limit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the command log for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query required")
			}
			return listCommandRecords(cmd.OutOrStdout(), container, limit, query)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the command log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CommandLog == nil {
				return fmt.Errorf("command log unavailable")
			}
			return container.CommandLog.Clear()
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the command log to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CommandLog == nil {
				return fmt.Errorf("command log unavailable")
			}
			return container.CommandLog.ExportJSON(args[0])
		},
	}
}

func listCommandRecords(out io.Writer, container *app.Container, limit int, search string) error {
	if container.CommandLog == nil {
		return fmt.Errorf("command log unavailable")
	}
	records, err := container.CommandLog.Records(limit, search)
	if err != nil {
		return fmt.Errorf("read command log: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No commands recorded yet.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s => %s\n",
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.Model,
			rec.Prompt,
			rec.Command)
	}
	return nil
}
