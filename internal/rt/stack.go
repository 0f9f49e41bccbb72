package rt

// LazyState tags a lazy variable's slot-local evaluation progress (§4.7):
// NotEvaluated, Evaluating (guards against a self-referential cycle), or
// Evaluated (the cached path). It lives on the Stack, not on a binding,
// because a lowered Instruction carries only a bare slot index.
type LazyState uint8

const (
	LazyNotEvaluated LazyState = iota
	LazyEvaluating
	LazyEvaluated
)

// Stack is the activation record of a context or function: a fixed set of
// value slots plus access to enclosing modules by index (§3.4).
// Stack.imports is shared — multiple functions may reference the same
// imported stack, and mutation through SetAddress is visible to every
// holder; this is intentional (module-level state is observable). The
// slot array, by contrast, belongs exclusively to whichever activation
// currently owns it.
type Stack struct {
	imports []*Stack
	stack   []Value
	lazy    []LazyState
}

// NewStack allocates a Stack with size value slots (initialized to
// NoneValue) and the given imports.
func NewStack(imports []*Stack, size int) *Stack {
	slots := make([]Value, size)
	for i := range slots {
		slots[i] = NoneValue
	}
	return &Stack{imports: imports, stack: slots, lazy: make([]LazyState, size)}
}

// Get reads slot i.
func (s *Stack) Get(i int) Value { return s.stack[i] }

// Set writes slot i.
func (s *Stack) Set(i int, v Value) { s.stack[i] = v }

// Import returns the i-th imported Stack.
func (s *Stack) Import(i int) *Stack { return s.imports[i] }

// Imports returns the full import list, e.g. to hand it on unchanged to a
// sibling activation that shares the same closure environment.
func (s *Stack) Imports() []*Stack { return s.imports }

// Len reports the number of value slots.
func (s *Stack) Len() int { return len(s.stack) }

// LazyState reports slot i's lazy-evaluation progress.
func (s *Stack) LazyState(i int) LazyState { return s.lazy[i] }

// SetLazyState updates slot i's lazy-evaluation progress.
func (s *Stack) SetLazyState(i int, state LazyState) { s.lazy[i] = state }

// ShallowRefresh returns a new Stack with the same imports and a freshly
// allocated copy of the value slots, so a fresh call does not clobber the
// activation it was called from — this is what makes recursion safe
// against a Function's shared, persistent template stack (§5). Lazy state
// always starts fresh: a function's own lazy locals are unevaluated again
// on every call.
func (s *Stack) ShallowRefresh() *Stack {
	slots := make([]Value, len(s.stack))
	copy(slots, s.stack)
	return &Stack{imports: s.imports, stack: slots, lazy: make([]LazyState, len(s.stack))}
}
