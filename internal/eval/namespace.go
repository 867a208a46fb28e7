// Package eval implements the expression evaluation subsystem behind
// documentation examples. Example source lines are parsed with go/parser
// and interpreted against a namespace of builtin functions and bindings.
//
// The value domain is deliberately small: int64, float64, string, bool,
// lists ([]interface{}) and nil. Builtins operate on these values and
// return evaluation errors rather than panicking.
package eval

import "sort"

// Func is the signature of a callable registered in a namespace
type Func func(args ...interface{}) (interface{}, error)

// Namespace maps names to values and callables for one evaluation scope.
// Examples within a scope share a namespace; a fresh namespace is prepared
// for each scope of a run.
type Namespace struct {
	vars map[string]interface{}
}

// NewNamespace creates a namespace pre-populated with the builtin functions
func NewNamespace() *Namespace {
	ns := &Namespace{vars: make(map[string]interface{})}
	registerBuiltins(ns)
	return ns
}

// Bind associates a name with a value, replacing any previous binding
func (ns *Namespace) Bind(name string, value interface{}) {
	ns.vars[name] = value
}

// Lookup resolves a name to its bound value
func (ns *Namespace) Lookup(name string) (interface{}, bool) {
	v, ok := ns.vars[name]
	return v, ok
}

// Names returns all bound names in sorted order
func (ns *Namespace) Names() []string {
	names := make([]string, 0, len(ns.vars))
	for name := range ns.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
