/*
File: basic64/interp/environment.go
*/
package interp

import "github.com/svdev6/basic64/value"

// Environment holds every piece of mutable interpreter state that isn't
// specific to the main execution loop: the three variable namespaces and
// the DEF FN function table. BASIC has no lexical nesting - scalars,
// lists, and tables are each one flat, program-wide map.
type Environment struct {
	Scalars map[string]value.Value
	Lists   map[string][]value.Value
	Tables  map[string][][]value.Value
	Funcs   map[string]userFunc

	// ArrayBase is the configured lower subscript bound (the -ar option,
	// default 1). Lists and tables are still stored 0-indexed internally;
	// every subscript is translated by (x - ArrayBase).
	ArrayBase int
}

type userFunc struct {
	Param string
	Body  func(arg value.Value) (value.Value, error)
}

// NewEnvironment returns an Environment with the given array base.
func NewEnvironment(arrayBase int) *Environment {
	return &Environment{
		Scalars:   make(map[string]value.Value),
		Lists:     make(map[string][]value.Value),
		Tables:    make(map[string][][]value.Value),
		Funcs:     make(map[string]userFunc),
		ArrayBase: arrayBase,
	}
}

func newList(n int) []value.Value {
	return make([]value.Value, n)
}

func newTable(rows, cols int) [][]value.Value {
	t := make([][]value.Value, rows)
	for i := range t {
		t[i] = make([]value.Value, cols)
	}
	return t
}

// ensureList returns the backing slice for name, auto-allocating a
// zero-filled list of length 10 on first use (legacy default size; see
// DESIGN.md for the -ar/DIM interaction).
func (e *Environment) ensureList(name string, minLen int) []value.Value {
	l, ok := e.Lists[name]
	if !ok {
		size := 10
		if minLen > size {
			size = minLen
		}
		l = newList(size)
		e.Lists[name] = l
	}
	return l
}

func (e *Environment) ensureTable(name string) [][]value.Value {
	t, ok := e.Tables[name]
	if !ok {
		t = newTable(10, 10)
		e.Tables[name] = t
	}
	return t
}

// dimList preallocates name to exactly size n (DIM explicit bound).
func (e *Environment) dimList(name string, n int) {
	e.Lists[name] = newList(n)
}

// dimTable preallocates name to exactly rows x cols (DIM explicit bound).
func (e *Environment) dimTable(name string, rows, cols int) {
	e.Tables[name] = newTable(rows, cols)
}
