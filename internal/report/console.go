// Package report renders run results as human-readable console text.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/meredith/doctest/internal/models"
	"github.com/meredith/doctest/internal/runner"
)

// colorScheme defines the colors for report elements.
// Green: passing examples and the OK verdict
// Red: failures, errors and the FAILED verdict
// Yellow: evaluation errors in detail blocks
// Cyan: source locations
type colorScheme struct {
	pass     *color.Color
	fail     *color.Color
	errorly  *color.Color
	location *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	scheme := &colorScheme{
		pass:     color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
		errorly:  color.New(color.FgYellow),
		location: color.New(color.FgCyan),
	}
	if !enabled {
		scheme.pass.DisableColor()
		scheme.fail.DisableColor()
		scheme.errorly.DisableColor()
		scheme.location.DisableColor()
	}
	return scheme
}

// ColorEnabled decides whether the report should use colors: only when the
// caller did not disable them and stdout is a terminal
func ColorEnabled(noColor bool) bool {
	if noColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Console writes a textual run report to an output stream. It implements
// runner.Logger so per-example progress appears as the run proceeds.
type Console struct {
	out     io.Writer
	verbose bool
	scheme  *colorScheme
}

// NewConsole creates a console reporter. With verbose enabled every example
// prints a line as it runs; otherwise only the summary and failure detail
// appear.
func NewConsole(out io.Writer, verbose, useColor bool) *Console {
	return &Console{
		out:     out,
		verbose: verbose,
		scheme:  newColorScheme(useColor),
	}
}

var _ runner.Logger = (*Console)(nil)

// LogExample prints a progress line for one finished example
func (c *Console) LogExample(result models.Result) {
	if !c.verbose {
		return
	}
	mark := c.scheme.pass.Sprint("✓")
	if !result.Passed() {
		mark = c.scheme.fail.Sprint("✗")
	}
	fmt.Fprintf(c.out, "%s %s (%s) >>> %s\n",
		mark, c.scheme.location.Sprint(result.Example.Location()), result.Example.Scope, result.Example.Source)
}

// LogSummary prints the failure detail blocks and the aggregate verdict
func (c *Console) LogSummary(result *models.RunResult) {
	for _, failure := range result.Failures {
		c.logFailure(failure)
	}

	fmt.Fprintf(c.out, "Ran %d example(s) in %s\n\n", result.Attempted, formatDuration(result.Duration))

	if result.OK() {
		fmt.Fprintf(c.out, "%s OK\n", c.scheme.pass.Sprint("✓"))
		return
	}
	fmt.Fprintf(c.out, "%s FAILED (failures=%d, errors=%d)\n",
		c.scheme.fail.Sprint("✗"), result.Failed, result.Errored)
}

// logFailure prints the detail block for one failed or errored example
func (c *Console) logFailure(failure models.Result) {
	switch failure.Outcome {
	case models.OutcomeError:
		fmt.Fprintf(c.out, "%s ERROR: %s (%s)\n",
			c.scheme.fail.Sprint("✗"), c.scheme.location.Sprint(failure.Example.Location()), failure.Example.Scope)
	default:
		fmt.Fprintf(c.out, "%s FAIL: %s (%s)\n",
			c.scheme.fail.Sprint("✗"), c.scheme.location.Sprint(failure.Example.Location()), failure.Example.Scope)
	}

	fmt.Fprintf(c.out, "    >>> %s\n", failure.Example.Source)
	if failure.Outcome == models.OutcomeError && !failure.Example.ExpectsOutput() {
		fmt.Fprintf(c.out, "    %s\n\n", c.scheme.errorly.Sprint(failure.Actual))
		return
	}

	fmt.Fprintf(c.out, "    expected: %s\n", failure.Example.Expected)
	fmt.Fprintf(c.out, "    actual:   %s\n", failure.Actual)
	fmt.Fprintf(c.out, "    diff:     %s\n\n", runner.AnnotateDiff(failure.Example.Expected, failure.Actual))
}

// formatDuration keeps sub-second durations readable
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}
