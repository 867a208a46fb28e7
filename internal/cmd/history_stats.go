package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newHistoryStatsCommand creates the history stats command
func newHistoryStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics across all recorded runs",
		RunE:  historyStatsCommand,
	}
}

// historyStatsCommand implements the history stats command logic
func historyStatsCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Runs:      %d\n", stats.TotalRuns)
	fmt.Fprintf(out, "Examples:  %d\n", stats.TotalExamples)
	fmt.Fprintf(out, "Failed:    %d\n", stats.TotalFailed)
	fmt.Fprintf(out, "Errored:   %d\n", stats.TotalErrored)
	if !stats.LastRun.IsZero() {
		fmt.Fprintf(out, "Last run:  %s\n", stats.LastRun.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
