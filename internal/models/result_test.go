package models

import (
	"testing"
	"time"
)

func TestResultPassed(t *testing.T) {
	tests := []struct {
		outcome string
		want    bool
	}{
		{OutcomePass, true},
		{OutcomeFail, false},
		{OutcomeError, false},
	}

	for _, tt := range tests {
		result := Result{Outcome: tt.outcome}
		if got := result.Passed(); got != tt.want {
			t.Errorf("Passed() with outcome %s = %v, want %v", tt.outcome, got, tt.want)
		}
	}
}

func TestRunResultOK(t *testing.T) {
	clean := RunResult{Target: "calc", Attempted: 3, Duration: time.Millisecond}
	if !clean.OK() {
		t.Error("OK() should be true with no failures or errors")
	}

	failed := RunResult{Attempted: 3, Failed: 1}
	if failed.OK() {
		t.Error("OK() should be false with a failure")
	}

	errored := RunResult{Attempted: 3, Errored: 1}
	if errored.OK() {
		t.Error("OK() should be false with an error")
	}
}
