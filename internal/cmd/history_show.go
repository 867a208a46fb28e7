package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meredith/doctest/internal/models"
)

// newHistoryShowCommand creates the history show command
func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run in detail",
		Long: `Show one recorded run, including the detail of every failed or
errored example. The run id may be abbreviated to any unique prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: historyShowCommand,
	}
}

// historyShowCommand implements the history show command logic
func historyShowCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", run.ID)
	fmt.Fprintf(out, "Target:    %s\n", run.Target)
	fmt.Fprintf(out, "When:      %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Duration:  %s\n", formatRunDuration(run.Duration))
	fmt.Fprintf(out, "Ellipsis:  %t\n", run.Ellipsis)
	fmt.Fprintf(out, "Examples:  %d attempted, %d failed, %d errored\n", run.Attempted, run.Failed, run.Errored)
	fmt.Fprintf(out, "Verdict:   %s\n", verdict(run.OK()))

	for _, failure := range run.Failures {
		fmt.Fprintf(out, "\n✗ %s: %s:%d (%s)\n", failure.Outcome, failure.File, failure.Line, failure.Scope)
		fmt.Fprintf(out, "    >>> %s\n", failure.Source)
		if failure.Outcome == models.OutcomeError && failure.Expected == "" {
			fmt.Fprintf(out, "    %s\n", failure.Actual)
			continue
		}
		fmt.Fprintf(out, "    expected: %s\n", failure.Expected)
		fmt.Fprintf(out, "    actual:   %s\n", failure.Actual)
	}
	return nil
}
