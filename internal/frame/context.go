// Package frame implements the lexical-scope model that sits above
// package rt's Stack: Context, Scope and Variable (§3.4). It depends on
// rt one-directionally — rt never imports frame — because only Stack
// participates in the Value/Function/Instruction cycle rt has to break
// with identity equality; contexts, scopes and variables are pure
// compile-time bookkeeping with no cyclic reference back into Value.
package frame

import (
	"github.com/google/uuid"

	"github.com/latticevm/corevm/internal/rt"
)

// Context is the compile-time owner of every variable declared in a
// module or function body. allVariables only ever grows: indices handed
// out to a Variable remain stable for the context's lifetime (§5).
type Context struct {
	debugID      uuid.UUID
	imports      []*Context
	top          *Scope
	allVariables []*Variable
}

// NewContext creates a Context with the given imports and an empty top
// scope.
func NewContext(imports []*Context) *Context {
	c := &Context{debugID: uuid.New(), imports: imports}
	c.top = &Scope{context: c}
	return c
}

// DebugID is a stable identity that tells contexts apart for debugging; it
// carries no runtime semantics, and the debug printer does not render it.
func (c *Context) DebugID() uuid.UUID { return c.debugID }

// TopScope returns the context's root scope.
func (c *Context) TopScope() *Scope { return c.top }

// Imports returns the context's imported contexts, in declaration order.
func (c *Context) Imports() []*Context { return c.imports }

// Variables returns every variable ever declared in this context, in
// declaration (and therefore stack-slot) order.
func (c *Context) Variables() []*Variable { return c.allVariables }

// NewStack allocates a fresh runtime Stack sized to this context's
// variable count, wired to the given already-built import stacks. Callers
// must supply import stacks in the same order as Imports().
func (c *Context) NewStack(importStacks []*rt.Stack) *rt.Stack {
	return rt.NewStack(importStacks, len(c.allVariables))
}

// AddressFor computes the VariableAddress locating target from c: a
// direct hit if target belongs to c itself, a one-level import hop if
// target belongs to a direct import, or a breadth-first search through
// deeper import chains otherwise. Reports false if target is not visible
// from c through any import path.
func (c *Context) AddressFor(target *Variable) (rt.VariableAddress, bool) {
	if target.scope.context == c {
		return rt.VariableAddress{target.StackIndex}, true
	}
	type node struct {
		ctx  *Context
		path []int
	}
	visited := map[*Context]bool{c: true}
	queue := []node{{c, nil}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i, imp := range cur.ctx.imports {
			if visited[imp] {
				continue
			}
			visited[imp] = true
			path := append(append([]int{}, cur.path...), i)
			if imp == target.scope.context {
				addr := append(append(rt.VariableAddress{}, path...), target.StackIndex)
				return addr, true
			}
			queue = append(queue, node{imp, path})
		}
	}
	return nil, false
}
