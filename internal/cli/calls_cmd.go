package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/incubator/internal/cli/formatter"
	"github.com/alexanderramin/incubator/internal/repository"
	"github.com/spf13/cobra"
)

var errNoCallLog = errors.New("model call log is unavailable (database not opened)")

func newCallsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Show recent model calls and their outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Calls == nil {
				return errNoCallLog
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			ctx := cmd.Context()

			calls, err := app.Calls.ListRecent(ctx, limit)
			if err != nil {
				return fmt.Errorf("listing model calls: %w", err)
			}
			summary, err := app.Calls.Summary(ctx)
			if err != nil {
				return fmt.Errorf("summarizing model calls: %w", err)
			}

			out := app.stdout()
			fmt.Fprintln(out, formatter.FormatCallSummary(summary))
			fmt.Fprint(out, formatter.FormatCallTable(calls, time.Now()))
			if len(calls) == 0 {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", repository.DefaultListLimit, "number of calls to list")

	return cmd
}
