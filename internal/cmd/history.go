package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meredith/doctest/internal/history"
)

// NewHistoryCommand creates the history command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
		Long: `Inspect the run history recorded by doctest run. History lives in a
local SQLite database (.doctest/history.db by default); pass --db to
point at another database file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("db", "", "Path to the history database (default: from config)")

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())
	cmd.AddCommand(newHistoryLastCommand())

	return cmd
}

// openStore opens the history database named by --db or the configuration
func openStore(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.History.DBPath
	}
	return history.NewStore(dbPath)
}

// newHistoryListCommand creates the history list command
func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE:  historyListCommand,
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 for all)")

	return cmd
}

// historyListCommand implements the history list command logic
func historyListCommand(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  %-20s %3d example(s)  %s\n",
			shortID(run.ID), run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Target, run.Attempted, verdict(run.OK()))
	}
	return nil
}

// shortID truncates a run id for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// verdict renders the pass/fail marker for a recorded run
func verdict(ok bool) string {
	if ok {
		return "✓ OK"
	}
	return "✗ FAILED"
}

// formatRunDuration renders a stored run duration, which was recorded at
// millisecond granularity
func formatRunDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
