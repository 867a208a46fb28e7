package parser

import (
	"strings"
	"testing"
)

func TestExtractMarkdownFencedBlock(t *testing.T) {
	markdown := "# Arithmetic\n\nSome prose.\n\n```doctest\n>>> 2 + 3\n5\n```\n"

	extractor := NewMarkdownExtractor()
	examples, err := extractor.Extract(strings.NewReader(markdown), "README.md")
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
	if ex.Scope != "Arithmetic" {
		t.Errorf("Expected scope 'Arithmetic', got %q", ex.Scope)
	}
	if ex.Line != 6 {
		t.Errorf("Expected line 6, got %d", ex.Line)
	}
}

func TestExtractMarkdownPromptDetection(t *testing.T) {
	// Blocks without the doctest info string still participate when they
	// contain prompts; plain code blocks do not.
	markdown := "## Usage\n\n```\n>>> upper(\"go\")\nGO\n```\n\n```go\nfunc main() {}\n```\n"

	extractor := NewMarkdownExtractor()
	examples, err := extractor.Extract(strings.NewReader(markdown), "README.md")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	if len(examples) != 1 {
		t.Fatalf("Expected 1 example, got %d", len(examples))
	}
	if examples[0].Source != `upper("go")` {
		t.Errorf("Got source %q", examples[0].Source)
	}
}

func TestExtractMarkdownScopeTracking(t *testing.T) {
	markdown := `# Top

` + "```doctest\n>>> 1\n1\n```" + `

## Strings

` + "```doctest\n>>> \"a\" + \"b\"\nab\n```" + `

## Numbers

` + "```doctest\n>>> 2 * 2\n4\n```" + `
`

	extractor := NewMarkdownExtractor()
	examples, err := extractor.Extract(strings.NewReader(markdown), "doc.md")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	expectedScopes := []string{"Top", "Strings", "Numbers"}
	if len(examples) != len(expectedScopes) {
		t.Fatalf("Expected %d examples, got %d", len(expectedScopes), len(examples))
	}
	for i, scope := range expectedScopes {
		if examples[i].Scope != scope {
			t.Errorf("Example %d: expected scope %q, got %q", i, scope, examples[i].Scope)
		}
	}
}

func TestExtractMarkdownMultipleExamplesPerBlock(t *testing.T) {
	markdown := "```doctest\n>>> x := 4\n>>> x + 1\n5\n>>> x * x\n16\n```\n"

	extractor := NewMarkdownExtractor()
	examples, err := extractor.Extract(strings.NewReader(markdown), "doc.md")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}

	if len(examples) != 3 {
		t.Fatalf("Expected 3 examples, got %d", len(examples))
	}
	if examples[0].Expected != "" {
		t.Errorf("Binding example should have no expected output, got %q", examples[0].Expected)
	}
	if examples[1].Expected != "5" || examples[2].Expected != "16" {
		t.Errorf("Got expected outputs %q and %q", examples[1].Expected, examples[2].Expected)
	}
}

func TestExtractMarkdownNoExamples(t *testing.T) {
	markdown := "# Nothing here\n\nJust prose and a table.\n"

	extractor := NewMarkdownExtractor()
	examples, err := extractor.Extract(strings.NewReader(markdown), "doc.md")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}
	if len(examples) != 0 {
		t.Errorf("Expected 0 examples, got %d", len(examples))
	}
}

func TestExtractMarkdownIndentedBlock(t *testing.T) {
	markdown := "Paragraph introducing an example:\n\n    >>> min(3, 1)\n    1\n"

	extractor := NewMarkdownExtractor()
	examples, err := extractor.Extract(strings.NewReader(markdown), "doc.md")
	if err != nil {
		t.Fatalf("Failed to extract: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("Expected 1 example, got %d", len(examples))
	}
	if examples[0].Source != "min(3, 1)" || examples[0].Expected != "1" {
		t.Errorf("Got source %q expected %q", examples[0].Source, examples[0].Expected)
	}
	if examples[0].Scope != "document" {
		t.Errorf("Expected scope 'document', got %q", examples[0].Scope)
	}
}
