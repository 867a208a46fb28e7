package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for doctest
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctest",
		Short: "Run examples embedded in documentation",
		Long: `Doctest collects ">>> expression" examples embedded in Go doc
comments and Markdown code blocks, executes them in documentation order,
and prints a pass/fail report.

The expected output written below each prompt is compared against the
rendered result. With ellipsis matching enabled (the default), a "..."
in expected output matches any substring of the actual output.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
