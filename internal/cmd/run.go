package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meredith/doctest/internal/config"
	"github.com/meredith/doctest/internal/history"
	"github.com/meredith/doctest/internal/models"
	"github.com/meredith/doctest/internal/parser"
	"github.com/meredith/doctest/internal/report"
	"github.com/meredith/doctest/internal/runner"
	"github.com/meredith/doctest/internal/snapshot"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file-or-directory>...",
		Short: "Collect and execute documentation examples",
		Long: `Collect every documentation example under the given files or
directories, execute them in documentation order, and print a report.

Go files contribute examples from doc comments; Markdown files from code
blocks. Directories are walked recursively ( _test.go files, hidden
entries, vendor and testdata are skipped). A target that cannot be read
or parsed aborts the run before any example executes.

Configuration is loaded from .doctest/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  doctest run .                    # everything under the current tree
  doctest run pkg/calc README.md   # a package directory plus a file
  doctest run --no-ellipsis doc.md # wildcard markers are literal text
  doctest run --verbose .          # print a line per example

Exit code: 0 if every example passed, 1 if any failed or errored`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runCommand,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .doctest/config.yaml)")
	cmd.Flags().Bool("ellipsis", true, "Enable wildcard matching of \"...\" in expected output")
	cmd.Flags().Bool("verbose", false, "Print a line per example as the run proceeds")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var ellipsis *bool
	if cmd.Flags().Changed("ellipsis") {
		value, _ := cmd.Flags().GetBool("ellipsis")
		ellipsis = &value
	}
	var verbose *bool
	if cmd.Flags().Changed("verbose") {
		value, _ := cmd.Flags().GetBool("verbose")
		verbose = &value
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	cfg.MergeWithFlags(ellipsis, verbose, &noColor, &noHistory)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	bindings, err := cfg.EvalBindings()
	if err != nil {
		return err
	}

	// Collection-time failure is fatal: nothing runs
	suite, err := parser.CollectPaths(args)
	if err != nil {
		return err
	}

	console := report.NewConsole(cmd.OutOrStdout(), cfg.Verbose, report.ColorEnabled(!cfg.Color))

	r := runner.New(runner.Options{
		Ellipsis: cfg.Ellipsis,
		Bindings: bindings,
		Logger:   console,
	})
	result, err := r.Run(cmd.Context(), suite)
	if err != nil {
		return err
	}

	// History and snapshot failures must not mask the run result
	runID := ""
	if cfg.History.Enabled {
		if id, err := recordRun(cmd, cfg, result); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record run history: %v\n", err)
		} else {
			runID = id
		}
	}
	snap := snapshot.FromRunResult(result, runID, cfg.Ellipsis)
	if err := snapshot.Write(snapshot.DefaultPath, snap); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write run snapshot: %v\n", err)
	}

	console.LogSummary(result)

	if !result.OK() {
		return fmt.Errorf("%d of %d example(s) did not pass", result.Failed+result.Errored, result.Attempted)
	}
	return nil
}

// recordRun appends the result to the history database and prunes old runs
func recordRun(cmd *cobra.Command, cfg *config.Config, result *models.RunResult) (string, error) {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	run, err := store.RecordRun(cmd.Context(), result, cfg.Ellipsis)
	if err != nil {
		return "", err
	}
	if err := store.Prune(cmd.Context(), cfg.History.KeepRuns); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to prune run history: %v\n", err)
	}
	return run.ID, nil
}

// loadConfig resolves the configuration for a command invocation
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return config.LoadConfig(configPath)
	}
	return config.LoadConfigFromDir(".")
}
