package models

import "time"

// Example outcome constants
const (
	OutcomePass  = "PASS"  // Rendered output matched expected output
	OutcomeFail  = "FAIL"  // Rendered output did not match expected output
	OutcomeError = "ERROR" // Evaluation raised an error the example did not expect
)

// Result represents the outcome of executing a single example
type Result struct {
	Example Example       // The example that was executed
	Outcome string        // Outcome: "PASS", "FAIL", "ERROR"
	Actual  string        // Rendered actual output
	Err     error         // Evaluation error, if any
	Elapsed time.Duration // Time taken to evaluate
}

// Passed returns true if the example passed
func (r *Result) Passed() bool {
	return r.Outcome == OutcomePass
}

// RunResult represents the aggregate result of running a suite
type RunResult struct {
	Target    string        // Target the suite was collected from
	Attempted int           // Number of examples attempted
	Failed    int           // Number of output mismatches
	Errored   int           // Number of evaluation errors
	Duration  time.Duration // Total wall time for the run
	Failures  []Result      // Details of failed/errored examples, in order
}

// OK returns true if every attempted example passed
func (r *RunResult) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}
