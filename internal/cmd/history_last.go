package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meredith/doctest/internal/snapshot"
)

// newHistoryLastCommand creates the history last command
func newHistoryLastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the snapshot of the most recent run",
		Long: `Show the summary of the most recent run from the snapshot file
(.doctest/latest.json). The snapshot is written on every run, even when
history recording is disabled, so this works without a database.`,
		RunE: historyLastCommand,
	}
}

// historyLastCommand implements the history last command logic
func historyLastCommand(cmd *cobra.Command, args []string) error {
	snap, err := snapshot.Read(snapshot.DefaultPath)
	if err != nil {
		return fmt.Errorf("no snapshot found (run doctest run first): %w", err)
	}

	out := cmd.OutOrStdout()
	if snap.RunID != "" {
		fmt.Fprintf(out, "Run:       %s\n", snap.RunID)
	}
	fmt.Fprintf(out, "Target:    %s\n", snap.Target)
	fmt.Fprintf(out, "When:      %s\n", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Duration:  %dms\n", snap.Duration)
	fmt.Fprintf(out, "Ellipsis:  %t\n", snap.Ellipsis)
	fmt.Fprintf(out, "Examples:  %d attempted, %d failed, %d errored\n", snap.Attempted, snap.Failed, snap.Errored)
	fmt.Fprintf(out, "Verdict:   %s\n", verdict(snap.OK()))
	return nil
}
