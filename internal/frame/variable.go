package frame

import "github.com/latticevm/corevm/internal/rt"

// Variable is a binding with a stack slot in some Context. Every Variable
// is eagerly bound: the caller populates its stack slot before the slot is
// read (a function parameter before the call, a top-level declaration
// before the statement after it runs). Lazy initialization (§4.7) is a
// property of the slot at the rt.Stack/Instruction level
// (rt.Stack.LazyState, InstrVariableGetLazy), not of this binding.
type Variable struct {
	Name       string
	CachedType *rt.Type
	StackIndex int

	scope *Scope
}

// Scope returns the scope the variable was declared in.
func (v *Variable) Scope() *Scope { return v.scope }
