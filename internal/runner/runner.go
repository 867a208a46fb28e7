// Package runner executes a suite of documentation examples sequentially
// and collects per-example results. A failing example never stops the run;
// it is recorded and execution continues with the next example.
package runner

import (
	"context"
	"time"

	"github.com/meredith/doctest/internal/eval"
	"github.com/meredith/doctest/internal/models"
)

// Logger receives progress notifications during a run
type Logger interface {
	// LogExample is called after each example finishes
	LogExample(result models.Result)
}

// Options configures a run
type Options struct {
	// Ellipsis enables wildcard matching: "..." in expected output
	// matches any substring of actual output
	Ellipsis bool

	// Bindings are seeded into the namespace of every scope, on top of
	// the builtins
	Bindings map[string]interface{}

	// Logger, when set, observes each example result as it happens
	Logger Logger
}

// Runner executes suites. Execution is single threaded and deterministic:
// examples run in discovery order, examples of one scope share a namespace,
// and each scope starts from a fresh namespace.
type Runner struct {
	opts Options
}

// New creates a runner with the given options
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run executes every example of the suite and returns the aggregate result.
// The context is checked between examples; a running example itself cannot
// be interrupted, so a hanging example hangs the run.
func (r *Runner) Run(ctx context.Context, suite *models.Suite) (*models.RunResult, error) {
	start := time.Now()
	result := &models.RunResult{Target: suite.Target}
	namespaces := make(map[string]*eval.Namespace)

	for _, example := range suite.Examples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ns, ok := namespaces[example.Scope]
		if !ok {
			ns = r.newNamespace()
			namespaces[example.Scope] = ns
		}

		res := r.runExample(ns, example)
		if r.opts.Logger != nil {
			r.opts.Logger.LogExample(res)
		}
		result.Attempted++
		switch res.Outcome {
		case models.OutcomeFail:
			result.Failed++
			result.Failures = append(result.Failures, res)
		case models.OutcomeError:
			result.Errored++
			result.Failures = append(result.Failures, res)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// runExample evaluates one example against its scope namespace
func (r *Runner) runExample(ns *eval.Namespace, example models.Example) models.Result {
	start := time.Now()
	value, err := eval.Eval(ns, example.Source)

	res := models.Result{
		Example: example,
		Outcome: models.OutcomePass,
		Elapsed: time.Since(start),
	}

	if err != nil {
		// An example may legitimately document an error as its
		// expected output
		res.Actual = "error: " + err.Error()
		res.Err = err
		if example.ExpectsOutput() && Match(example.Expected, res.Actual, r.opts.Ellipsis) {
			return res
		}
		res.Outcome = models.OutcomeError
		return res
	}

	res.Actual = eval.Render(value)
	if !example.ExpectsOutput() {
		return res
	}
	if !Match(example.Expected, res.Actual, r.opts.Ellipsis) {
		res.Outcome = models.OutcomeFail
	}
	return res
}

// newNamespace prepares a fresh scope namespace: builtins plus the
// configured bindings
func (r *Runner) newNamespace() *eval.Namespace {
	ns := eval.NewNamespace()
	for name, value := range r.opts.Bindings {
		ns.Bind(name, value)
	}
	return ns
}
