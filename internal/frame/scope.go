package frame

import "github.com/latticevm/corevm/internal/rt"

// Scope is a tree node restricting which of a context's variables are
// visible at a given point in the source. Only the top scope of a context
// (parent == nil) is meaningful for import resolution; child scopes chain
// up through parent to find it.
type Scope struct {
	parent    *Scope
	context   *Context
	variables []*Variable
}

// NewChildScope opens a nested scope under s, inheriting its context.
func (s *Scope) NewChildScope() *Scope {
	return &Scope{parent: s, context: s.context}
}

// Parent returns the enclosing scope, or nil at the top.
func (s *Scope) Parent() *Scope { return s.parent }

// Context returns the scope's owning context.
func (s *Scope) Context() *Context { return s.context }

// Declare binds name to a fresh Variable with the next stack slot in the
// scope's context. The slot is eagerly bound: the caller (a function call
// binding parameters, a top-level Assign, CompileProgramWithPrelude
// seeding a native) writes it before anything reads it.
func (s *Scope) Declare(name string, t *rt.Type) *Variable {
	v := &Variable{
		Name:       name,
		CachedType: t,
		StackIndex: len(s.context.allVariables),
		scope:      s,
	}
	s.context.allVariables = append(s.context.allVariables, v)
	s.variables = append(s.variables, v)
	return v
}

// Lookup searches this scope and its ancestors for name, innermost first.
func (s *Scope) Lookup(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		for i := len(cur.variables) - 1; i >= 0; i-- {
			if cur.variables[i].Name == name {
				return cur.variables[i], true
			}
		}
	}
	return nil, false
}
