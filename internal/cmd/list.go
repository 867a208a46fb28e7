package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meredith/doctest/internal/parser"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file-or-directory>...",
		Short: "List collected examples without running them",
		Long: `Collect documentation examples from the given files or directories
and print one line per example in documentation order. Nothing is
executed, so this is a fast way to check what a run would cover.

Examples:
  doctest list .              # everything under the current tree
  doctest list README.md      # a single file
  doctest list --fail-empty . # treat zero examples as an error

Exit code: 0 on success, 1 on a collection error (or when --fail-empty
is set and nothing was found)`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         listCommand,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("fail-empty", false, "Exit non-zero when no examples are found")

	return cmd
}

// listCommand implements the list command logic
func listCommand(cmd *cobra.Command, args []string) error {
	failEmpty, _ := cmd.Flags().GetBool("fail-empty")

	suite, err := parser.CollectPaths(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, example := range suite.Examples {
		fmt.Fprintf(out, "%s (%s) >>> %s\n", example.Location(), example.Scope, example.Source)
	}
	fmt.Fprintf(out, "%d example(s) in %s\n", suite.Len(), suite.Target)

	if failEmpty && suite.Len() == 0 {
		return fmt.Errorf("no examples found in %s", suite.Target)
	}
	return nil
}
