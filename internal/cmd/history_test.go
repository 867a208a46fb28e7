package cmd

import (
	"strings"
	"testing"
)

func TestHistoryCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	file := createExampleFile(t, ".", "calc.md", failingDoc)

	// Record one failing run in the default database location
	if _, err := executeCommand(t, "run", "--no-color", file); err == nil {
		t.Fatal("Run should fail on the failing example")
	}

	output, err := executeCommand(t, "history", "list")
	if err != nil {
		t.Fatalf("History list should succeed: %v", err)
	}
	if !strings.Contains(output, "✗ FAILED") {
		t.Errorf("Expected failed verdict in list, got: %s", output)
	}

	// The listed id prefix resolves via show
	fields := strings.Fields(output)
	if len(fields) == 0 {
		t.Fatalf("Expected a run line, got: %s", output)
	}
	showOut, err := executeCommand(t, "history", "show", fields[0])
	if err != nil {
		t.Fatalf("History show should succeed: %v", err)
	}
	if !strings.Contains(showOut, "2 attempted, 1 failed") {
		t.Errorf("Expected counters in show output, got: %s", showOut)
	}
	if !strings.Contains(showOut, ">>> 2 + 2") {
		t.Errorf("Expected failure source in show output, got: %s", showOut)
	}

	statsOut, err := executeCommand(t, "history", "stats")
	if err != nil {
		t.Fatalf("History stats should succeed: %v", err)
	}
	if !strings.Contains(statsOut, "Runs:      1") {
		t.Errorf("Expected run counter, got: %s", statsOut)
	}

	lastOut, err := executeCommand(t, "history", "last")
	if err != nil {
		t.Fatalf("History last should succeed: %v", err)
	}
	if !strings.Contains(lastOut, "✗ FAILED") {
		t.Errorf("Expected failed verdict in last output, got: %s", lastOut)
	}

	if _, err := executeCommand(t, "history", "clear"); err != nil {
		t.Fatalf("History clear should succeed: %v", err)
	}
	listOut, err := executeCommand(t, "history", "list")
	if err != nil {
		t.Fatalf("History list should succeed after clear: %v", err)
	}
	if !strings.Contains(listOut, "No runs recorded") {
		t.Errorf("Expected empty history after clear, got: %s", listOut)
	}
}

func TestHistoryShow_UnknownRun(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "history", "show", "zzzz")
	if err == nil {
		t.Fatal("History show should fail for an unknown run id")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not-found error, got: %v", err)
	}
}

func TestHistoryLast_NoSnapshot(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "history", "last")
	if err == nil {
		t.Fatal("History last should fail without a snapshot")
	}
	if !strings.Contains(err.Error(), "no snapshot found") {
		t.Errorf("Expected snapshot error, got: %v", err)
	}
}

func TestHistoryList_CustomDB(t *testing.T) {
	t.Chdir(t.TempDir())

	output, err := executeCommand(t, "history", "list", "--db", "other.db")
	if err != nil {
		t.Fatalf("History list with --db should succeed: %v", err)
	}
	if !strings.Contains(output, "No runs recorded") {
		t.Errorf("Expected empty history, got: %s", output)
	}
}
