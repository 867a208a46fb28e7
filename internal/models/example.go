package models

import (
	"errors"
	"fmt"
)

// Example represents a single documented (input, expected-output) pair
// extracted from a doc comment or a markdown code block. Examples are
// immutable once extracted.
type Example struct {
	File     string // Source file the example was extracted from
	Line     int    // 1-based line number of the prompt line
	Scope    string // Enclosing scope: package/decl name or markdown heading
	Source   string // The expression text after the ">>> " prompt
	Expected string // Expected output text (may be empty, may contain "...")
}

// Validate checks if the example has all required fields
func (e *Example) Validate() error {
	if e.Source == "" {
		return errors.New("example source is required")
	}
	if e.File == "" {
		return errors.New("example file is required")
	}
	if e.Line <= 0 {
		return fmt.Errorf("example line must be positive, got %d", e.Line)
	}
	return nil
}

// Location returns the file:line form used in reports
func (e *Example) Location() string {
	return fmt.Sprintf("%s:%d", e.File, e.Line)
}

// ExpectsOutput returns true if the example asserts on its rendered output.
// Examples with no expected text (bare statements such as bindings) only
// fail when evaluation errors.
func (e *Example) ExpectsOutput() bool {
	return e.Expected != ""
}

// Suite is an ordered collection of examples to execute together.
// Order is discovery order within the target's documentation.
type Suite struct {
	Target   string    // The path or package the suite was collected from
	Examples []Example // Examples in discovery order
}

// Validate checks every example in the suite
func (s *Suite) Validate() error {
	for i := range s.Examples {
		if err := s.Examples[i].Validate(); err != nil {
			return fmt.Errorf("example %d: %w", i+1, err)
		}
	}
	return nil
}

// Len returns the number of examples in the suite
func (s *Suite) Len() int {
	return len(s.Examples)
}

// Scopes returns the distinct scope names in discovery order.
// Examples within one scope share a namespace during a run.
func (s *Suite) Scopes() []string {
	var scopes []string
	seen := make(map[string]bool)
	for _, ex := range s.Examples {
		if !seen[ex.Scope] {
			seen[ex.Scope] = true
			scopes = append(scopes, ex.Scope)
		}
	}
	return scopes
}

// ByScope returns the examples belonging to the given scope, in order
func (s *Suite) ByScope(scope string) []Example {
	var out []Example
	for _, ex := range s.Examples {
		if ex.Scope == scope {
			out = append(out, ex)
		}
	}
	return out
}
