package rt

// InstructionKind tags the variant carried by an Instruction. Arithmetic
// and comparison operators are promoted to top-level kinds during
// lowering rather than wrapped in a generic binary/unary node, so the
// evaluator can dispatch on kind alone with no secondary switch (§4.4).
type InstructionKind uint8

const (
	InstrNoOp InstructionKind = iota
	InstrConstant
	InstrFunctionCall
	InstrDispatch
	InstrSequence
	InstrVariableGet
	InstrVariableGetLazy
	InstrVariableSet
	InstrFromImportedStack
	InstrSetAddress
	InstrArmStack
	InstrIf
	InstrWhile
	InstrDoUntil
	InstrEmitEffect
	InstrHandleEffect
	InstrBuildTuple
	InstrBuildList
	InstrBuildSet
	InstrBuildTable
	InstrBuildComposite

	InstrAddInt
	InstrSubInt
	InstrMulInt
	InstrDivInt
	InstrModInt
	InstrAddUint
	InstrSubUint
	InstrMulUint
	InstrDivUint
	InstrModUint
	InstrAddFloat
	InstrSubFloat
	InstrMulFloat
	InstrDivFloat
	InstrNegInt
	InstrNegUint
	InstrNegFloat
	InstrToFloat

	// Dyn variants back arithmetic on an operand whose static type is Any
	// (an untyped function parameter, most commonly): the concrete
	// operation is chosen from the runtime Value's kind instead of the
	// static type, mirroring how the comparison instructions below already
	// have to work (§4.4).
	InstrAddDyn
	InstrSubDyn
	InstrMulDyn
	InstrDivIntDyn
	InstrModDyn
	InstrNegDyn

	InstrCompareEq
	InstrCompareNeq
	InstrCompareLt
	InstrCompareLe
	InstrCompareGt
	InstrCompareGe
	InstrLogicalNot
)

// DispatchTarget is a lowered DispatchCase: declared parameter types, the
// candidate's executable body, and a private frame template sized to its
// own parameters+locals, still in declaration order. Template carries no
// imports, and the evaluator builds the winner's frame with none either:
// a candidate body sees only its own parameters and locals (§4.6).
type DispatchTarget struct {
	ArgTypes []Type
	Body     *Instruction
	Template *Stack
}

// TableEntry is one lowered key/value pair of a BuildTable instruction.
type TableEntry struct {
	Key   *Instruction
	Value *Instruction
}

// Instruction is the executable tree the evaluator consumes. It is built
// once by Lower and never mutated afterward, so its child slices — though
// ordinary Go slices — are allocated at exactly their final length and
// never grow again, standing in for the "fixed-length array" the source
// model calls for.
type Instruction struct {
	kind InstructionKind

	constant Value

	callee *Instruction
	args   []*Instruction

	dispatchees []DispatchTarget

	children []*Instruction

	slot int

	importIndex int
	sub         *Instruction

	address VariableAddress
	value   *Instruction

	fn *Instruction

	cond *Instruction
	then *Instruction
	els  *Instruction
	body *Instruction

	handler *Instruction

	pairs []TableEntry

	fieldNames []string

	operand  *Instruction
	lhs, rhs *Instruction
}

func (i *Instruction) Kind() InstructionKind { return i.kind }

func (i *Instruction) Constant() Value             { return i.constant }
func (i *Instruction) Callee() *Instruction        { return i.callee }
func (i *Instruction) Args() []*Instruction        { return i.args }
func (i *Instruction) Dispatchees() []DispatchTarget { return i.dispatchees }
func (i *Instruction) Children() []*Instruction    { return i.children }
func (i *Instruction) Slot() int                   { return i.slot }
func (i *Instruction) ImportIndex() int            { return i.importIndex }
func (i *Instruction) Sub() *Instruction           { return i.sub }
func (i *Instruction) Address() VariableAddress    { return i.address }
func (i *Instruction) Value() *Instruction         { return i.value }
func (i *Instruction) Fn() *Instruction            { return i.fn }
func (i *Instruction) Cond() *Instruction          { return i.cond }
func (i *Instruction) Then() *Instruction          { return i.then }
func (i *Instruction) Else() *Instruction          { return i.els }
func (i *Instruction) Body() *Instruction          { return i.body }
func (i *Instruction) Handler() *Instruction       { return i.handler }
func (i *Instruction) Pairs() []TableEntry         { return i.pairs }
func (i *Instruction) FieldNames() []string        { return i.fieldNames }
func (i *Instruction) Operand() *Instruction       { return i.operand }
func (i *Instruction) Lhs() *Instruction           { return i.lhs }
func (i *Instruction) Rhs() *Instruction           { return i.rhs }

// InstructionEqual is structural over all fields (§4.1), forcing
// comparison across variants the way Statement's does.
func InstructionEqual(a, b *Instruction) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case InstrNoOp:
		return true
	case InstrConstant:
		return Equal(a.constant, b.constant)
	case InstrFunctionCall:
		return InstructionEqual(a.callee, b.callee) && instrSliceEqual(a.args, b.args)
	case InstrDispatch:
		if len(a.dispatchees) != len(b.dispatchees) || !instrSliceEqual(a.args, b.args) {
			return false
		}
		for k := range a.dispatchees {
			if !typeSliceEqual(a.dispatchees[k].ArgTypes, b.dispatchees[k].ArgTypes) ||
				!InstructionEqual(a.dispatchees[k].Body, b.dispatchees[k].Body) {
				return false
			}
		}
		return true
	case InstrSequence, InstrBuildTuple, InstrBuildList, InstrBuildSet:
		return instrSliceEqual(a.children, b.children)
	case InstrBuildComposite:
		if len(a.fieldNames) != len(b.fieldNames) {
			return false
		}
		for k := range a.fieldNames {
			if a.fieldNames[k] != b.fieldNames[k] {
				return false
			}
		}
		return instrSliceEqual(a.children, b.children)
	case InstrBuildTable:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for k := range a.pairs {
			if !InstructionEqual(a.pairs[k].Key, b.pairs[k].Key) || !InstructionEqual(a.pairs[k].Value, b.pairs[k].Value) {
				return false
			}
		}
		return true
	case InstrVariableGet:
		return a.slot == b.slot
	case InstrVariableGetLazy:
		return a.slot == b.slot && InstructionEqual(a.value, b.value)
	case InstrVariableSet:
		return a.slot == b.slot && InstructionEqual(a.value, b.value)
	case InstrFromImportedStack:
		return a.importIndex == b.importIndex && InstructionEqual(a.sub, b.sub)
	case InstrSetAddress:
		return addressEqual(a.address, b.address) && InstructionEqual(a.value, b.value)
	case InstrArmStack:
		return InstructionEqual(a.fn, b.fn)
	case InstrIf:
		return InstructionEqual(a.cond, b.cond) && InstructionEqual(a.then, b.then) && InstructionEqual(a.els, b.els)
	case InstrWhile, InstrDoUntil:
		return InstructionEqual(a.cond, b.cond) && InstructionEqual(a.body, b.body)
	case InstrEmitEffect:
		return InstructionEqual(a.value, b.value)
	case InstrHandleEffect:
		return InstructionEqual(a.handler, b.handler) && InstructionEqual(a.body, b.body)
	case InstrNegInt, InstrNegUint, InstrNegFloat, InstrLogicalNot, InstrToFloat, InstrNegDyn:
		return InstructionEqual(a.operand, b.operand)
	default: // binary arithmetic / comparison
		return InstructionEqual(a.lhs, b.lhs) && InstructionEqual(a.rhs, b.rhs)
	}
}

func instrSliceEqual(a, b []*Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !InstructionEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
