package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// LocalVar is a lexically scoped binding: a parameter, a `let`/`var`
// local, or a `for` loop variable. Unlike top-level declarations, these
// are never overloaded, so one name maps to exactly one binding per
// scope.
type LocalVar struct {
	Name    string
	Type    types.Type
	Mutable bool
	Decl    ast.Node
}

// Scope is one level of lexical nesting (a function body, a block, a
// for-loop's introduced variable). Chained via Outer so inner scopes
// shadow outer ones.
type Scope struct {
	Outer *Scope
	vars  map[string]*LocalVar
}

// NewScope creates a scope nested inside outer (nil for a function's
// top-level scope).
func NewScope(outer *Scope) *Scope {
	return &Scope{Outer: outer, vars: make(map[string]*LocalVar)}
}

// Declare introduces name into this scope. Returns false if name is
// already declared directly in this scope (shadowing an outer scope is
// fine; redeclaring within the same scope is not).
func (s *Scope) Declare(lv *LocalVar) bool {
	if _, exists := s.vars[lv.Name]; exists {
		return false
	}
	s.vars[lv.Name] = lv
	return true
}

// Lookup searches this scope and, failing that, every enclosing scope.
func (s *Scope) Lookup(name string) (*LocalVar, bool) {
	for sc := s; sc != nil; sc = sc.Outer {
		if lv, ok := sc.vars[name]; ok {
			return lv, true
		}
	}
	return nil, false
}

// IsDeclaredHere reports whether name is declared directly in this
// scope (not an enclosing one).
func (s *Scope) IsDeclaredHere(name string) bool {
	_, ok := s.vars[name]
	return ok
}
