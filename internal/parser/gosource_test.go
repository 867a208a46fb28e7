package parser

import (
	"strings"
	"testing"
)

func TestExtractGoSourceFunc(t *testing.T) {
	source := `package calc

// Add returns the sum of two numbers.
//
//	>>> 2 + 3
//	5
func Add(a, b int) int { return a + b }
`

	extractor := NewGoSourceExtractor()
	examples, err := extractor.Extract(strings.NewReader(source), "calc.go")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	if len(examples) != 1 {
		t.Fatalf("Expected 1 example, got %d", len(examples))
	}

	ex := examples[0]
	if ex.Source != "2 + 3" {
		t.Errorf("Expected source '2 + 3', got %q", ex.Source)
	}
	if ex.Expected != "5" {
		t.Errorf("Expected output '5', got %q", ex.Expected)
	}
	if ex.Scope != "Add" {
		t.Errorf("Expected scope 'Add', got %q", ex.Scope)
	}
	if ex.File != "calc.go" {
		t.Errorf("Expected file 'calc.go', got %q", ex.File)
	}
	if ex.Line != 5 {
		t.Errorf("Expected line 5, got %d", ex.Line)
	}
}

func TestExtractGoSourceScopes(t *testing.T) {
	source := `// Package calc does arithmetic.
//
//	>>> 1 + 1
//	2
package calc

// Precision is the default precision.
//
//	>>> 10 - 2
//	8
const Precision = 2

// Calculator holds state.
//
//	>>> 3 * 3
//	9
type Calculator struct{}

// Reset clears state.
//
//	>>> 4 / 2
//	2
func (c *Calculator) Reset() {}

func undocumented() {}
`

	extractor := NewGoSourceExtractor()
	examples, err := extractor.Extract(strings.NewReader(source), "calc.go")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	expectedScopes := []string{"package calc", "Precision", "Calculator", "Calculator.Reset"}
	if len(examples) != len(expectedScopes) {
		t.Fatalf("Expected %d examples, got %d", len(expectedScopes), len(examples))
	}
	for i, scope := range expectedScopes {
		if examples[i].Scope != scope {
			t.Errorf("Example %d: expected scope %q, got %q", i, scope, examples[i].Scope)
		}
	}
}

func TestExtractGoSourceContinuation(t *testing.T) {
	source := `package calc

// Sum adds things up.
//
//	>>> 1 + 2 +
//	... 3 + 4
//	10
func Sum() {}
`

	extractor := NewGoSourceExtractor()
	examples, err := extractor.Extract(strings.NewReader(source), "calc.go")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	if len(examples) != 1 {
		t.Fatalf("Expected 1 example, got %d", len(examples))
	}
	if examples[0].Source != "1 + 2 +\n3 + 4" {
		t.Errorf("Continuation not folded, got %q", examples[0].Source)
	}
}

func TestExtractGoSourceMultilineExpected(t *testing.T) {
	source := `package calc

// Show prints values.
//
//	>>> list(1, 2)
//	[1, 2]
//
//	>>> "second"
//	second
func Show() {}
`

	extractor := NewGoSourceExtractor()
	examples, err := extractor.Extract(strings.NewReader(source), "calc.go")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	if len(examples) != 2 {
		t.Fatalf("Expected 2 examples, got %d", len(examples))
	}
	if examples[0].Expected != "[1, 2]" {
		t.Errorf("Expected '[1, 2]', got %q", examples[0].Expected)
	}
	if examples[1].Source != `"second"` {
		t.Errorf("Expected '\"second\"', got %q", examples[1].Source)
	}
}

func TestExtractGoSourceNoExamples(t *testing.T) {
	source := `package empty

// Helper does nothing interesting.
func Helper() {}
`

	extractor := NewGoSourceExtractor()
	examples, err := extractor.Extract(strings.NewReader(source), "empty.go")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}
	if len(examples) != 0 {
		t.Errorf("Expected 0 examples, got %d", len(examples))
	}
}

func TestExtractGoSourceSyntaxError(t *testing.T) {
	source := `package broken

func Broken( {
`

	extractor := NewGoSourceExtractor()
	_, err := extractor.Extract(strings.NewReader(source), "broken.go")
	if err == nil {
		t.Fatal("Expected a parse error for broken source")
	}
	if !strings.Contains(err.Error(), "failed to parse Go source") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestExtractGoSourceBlockComment(t *testing.T) {
	source := `package calc

/*
Mul multiplies.

	>>> 6 * 7
	42
*/
func Mul() {}
`

	extractor := NewGoSourceExtractor()
	examples, err := extractor.Extract(strings.NewReader(source), "calc.go")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("Expected 1 example, got %d", len(examples))
	}
	if examples[0].Source != "6 * 7" || examples[0].Expected != "42" {
		t.Errorf("Got source %q expected %q", examples[0].Source, examples[0].Expected)
	}
}
