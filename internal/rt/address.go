package rt

// VariableAddress is an ordered sequence of integers indexing from the
// current context, through zero or more imported contexts, to the
// variable's final stack slot (§3.4). All indices but the last select an
// import; the last selects a slot.
type VariableAddress []int

// Imports returns the leading import-selecting indices.
func (a VariableAddress) Imports() []int {
	if len(a) == 0 {
		return nil
	}
	return a[:len(a)-1]
}

// Slot returns the final stack-slot index.
func (a VariableAddress) Slot() int {
	return a[len(a)-1]
}
