package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newHistoryClearCommand creates the history clear command
func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE:  historyClearCommand,
	}
}

// historyClearCommand implements the history clear command logic
func historyClearCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
	return nil
}
