package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/meredith/doctest/internal/models"
)

func sampleResult() *models.RunResult {
	return &models.RunResult{
		Target:    "calc",
		Attempted: 3,
		Failed:    1,
		Errored:   0,
		Duration:  2 * time.Millisecond,
		Failures: []models.Result{
			{
				Example: models.Example{
					File:     "calc.go",
					Line:     12,
					Scope:    "Add",
					Source:   "2 + 2",
					Expected: "4",
				},
				Outcome: models.OutcomeFail,
				Actual:  "5",
			},
		},
	}
}

func TestSummaryFailure(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false, false)
	console.LogSummary(sampleResult())
	out := buf.String()

	// The failure block carries the literal expected and actual strings
	for _, want := range []string{
		"FAIL: calc.go:12 (Add)",
		">>> 2 + 2",
		"expected: 4",
		"actual:   5",
		"Ran 3 example(s)",
		"FAILED (failures=1, errors=0)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryOK(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false, false)
	console.LogSummary(&models.RunResult{Target: "calc", Attempted: 2, Duration: time.Millisecond})
	out := buf.String()

	if !strings.Contains(out, "Ran 2 example(s)") {
		t.Errorf("summary missing count:\n%s", out)
	}
	if !strings.Contains(out, "✓ OK") {
		t.Errorf("summary missing OK verdict:\n%s", out)
	}
	if strings.Contains(out, "FAILED") {
		t.Errorf("passing run must not report FAILED:\n%s", out)
	}
}

func TestSummaryZeroExamples(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false, false)
	console.LogSummary(&models.RunResult{Target: "empty"})

	if !strings.Contains(buf.String(), "Ran 0 example(s)") {
		t.Errorf("zero-example run must still report a summary:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "✓ OK") {
		t.Errorf("zero-example run is a pass:\n%s", buf.String())
	}
}

func TestSummaryErrorBlock(t *testing.T) {
	result := &models.RunResult{
		Target:    "calc",
		Attempted: 1,
		Errored:   1,
		Failures: []models.Result{
			{
				Example: models.Example{File: "doc.md", Line: 3, Scope: "Doc", Source: "nope"},
				Outcome: models.OutcomeError,
				Actual:  `error: undefined name "nope"`,
				Err:     errors.New(`undefined name "nope"`),
			},
		},
	}

	var buf bytes.Buffer
	console := NewConsole(&buf, false, false)
	console.LogSummary(result)
	out := buf.String()

	if !strings.Contains(out, "ERROR: doc.md:3 (Doc)") {
		t.Errorf("missing error block:\n%s", out)
	}
	if !strings.Contains(out, `error: undefined name "nope"`) {
		t.Errorf("missing error text:\n%s", out)
	}
	if !strings.Contains(out, "FAILED (failures=0, errors=1)") {
		t.Errorf("missing verdict:\n%s", out)
	}
}

func TestLogExampleVerbose(t *testing.T) {
	result := models.Result{
		Example: models.Example{File: "doc.md", Line: 7, Scope: "Doc", Source: "1 + 1", Expected: "2"},
		Outcome: models.OutcomePass,
		Actual:  "2",
	}

	var buf bytes.Buffer
	NewConsole(&buf, true, false).LogExample(result)
	if !strings.Contains(buf.String(), "✓ doc.md:7 (Doc) >>> 1 + 1") {
		t.Errorf("verbose line missing:\n%s", buf.String())
	}

	buf.Reset()
	NewConsole(&buf, false, false).LogExample(result)
	if buf.Len() != 0 {
		t.Errorf("non-verbose reporter must stay quiet, got:\n%s", buf.String())
	}
}
