package cmd

import (
	"strings"
	"testing"
)

func TestListCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	file := createExampleFile(t, ".", "calc.md", passingDoc)

	output, err := executeCommand(t, "list", file)
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}

	if !strings.Contains(output, "calc.md:4 (Calc) >>> 1 + 1") {
		t.Errorf("Expected example line, got: %s", output)
	}
	if !strings.Contains(output, "2 example(s)") {
		t.Errorf("Expected example count, got: %s", output)
	}
}

func TestListCommand_Empty(t *testing.T) {
	t.Chdir(t.TempDir())
	file := createExampleFile(t, ".", "plain.md", "# Nothing here\n")

	output, err := executeCommand(t, "list", file)
	if err != nil {
		t.Fatalf("List of an empty file should succeed: %v", err)
	}
	if !strings.Contains(output, "0 example(s)") {
		t.Errorf("Expected zero count, got: %s", output)
	}

	_, err = executeCommand(t, "list", "--fail-empty", file)
	if err == nil {
		t.Fatal("List with --fail-empty should fail when nothing is found")
	}
	if !strings.Contains(err.Error(), "no examples found") {
		t.Errorf("Expected empty error, got: %v", err)
	}
}

func TestListCommand_MissingTarget(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "list", "does-not-exist")
	if err == nil {
		t.Fatal("List should fail for a missing target")
	}
}
