package rt

// StatementKind tags the variant carried by a Statement.
type StatementKind uint8

const (
	StmtNone StatementKind = iota
	StmtConstant
	StmtFunctionCall
	StmtDispatch
	StmtSequence
	StmtVariableGet
	StmtVariableGetLazy
	StmtVariableSet
	StmtFromImportedStack
	StmtSetAddress
	StmtArmStack
	StmtIf
	StmtWhile
	StmtDoUntil
	StmtEmitEffect
	StmtHandleEffect
	StmtBuildTuple
	StmtBuildList
	StmtBuildSet
	StmtBuildTable
	StmtBuildComposite
	StmtUnary
	StmtBinary
)

// DispatchCase pairs a candidate's declared parameter types with its body,
// in declaration order — the order the Dispatcher ties against (§4.6).
// SlotCount is the candidate's own private activation size (parameters
// plus any locals its body declares); it is always >= len(ArgTypes).
type DispatchCase struct {
	ArgTypes  []Type
	Body      *Statement
	SlotCount int
}

// TablePair is one key/value entry of a BuildTable statement, evaluated
// key-first (§4.5).
type TablePair struct {
	Key   *Statement
	Value *Statement
}

// Statement is the compiler's typed output: every node carries a
// non-None cachedType (§3.5), and child sequences grow by append as the
// compiler walks the source Expression. It is lowered to an Instruction
// before execution.
type Statement struct {
	kind       StatementKind
	cachedType *Type

	constant Value

	callee *Statement
	args   []*Statement

	dispatchees []DispatchCase

	children []*Statement // Sequence, BuildTuple, BuildList, BuildSet, BuildComposite

	slot int

	importIndex int
	sub         *Statement

	address VariableAddress
	value   *Statement // VariableSet's RHS, SetAddress's RHS, EmitEffect's payload

	fn *Statement // ArmStack

	cond *Statement
	then *Statement
	els  *Statement // If's false branch; nil => None
	body *Statement // While/DoUntil

	handler *Statement // HandleEffect

	pairs []TablePair // BuildTable

	fieldNames []string // BuildComposite, parallel to children

	op       ArithOp
	operand  *Statement // unary
	lhs, rhs *Statement // binary
}

func (s *Statement) Kind() StatementKind { return s.kind }
func (s *Statement) Type() *Type         { return s.cachedType }

// --- constructors ---------------------------------------------------------

func NoneStatement(t *Type) *Statement { return &Statement{kind: StmtNone, cachedType: t} }

func ConstantStatement(v Value, t *Type) *Statement {
	return &Statement{kind: StmtConstant, cachedType: t, constant: v}
}

func FunctionCallStatement(callee *Statement, args []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtFunctionCall, cachedType: t, callee: callee, args: args}
}

func DispatchStatement(cases []DispatchCase, args []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtDispatch, cachedType: t, dispatchees: cases, args: args}
}

func SequenceStatement(children []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtSequence, cachedType: t, children: children}
}

func VariableGetStatement(slot int, t *Type) *Statement {
	return &Statement{kind: StmtVariableGet, cachedType: t, slot: slot}
}

// VariableGetLazyStatement reads a lazily-initialized module slot: init
// runs at most once, the first time the slot is read (§4.7).
func VariableGetLazyStatement(slot int, init *Statement, t *Type) *Statement {
	return &Statement{kind: StmtVariableGetLazy, cachedType: t, slot: slot, value: init}
}

func VariableSetStatement(slot int, value *Statement, t *Type) *Statement {
	return &Statement{kind: StmtVariableSet, cachedType: t, slot: slot, value: value}
}

func FromImportedStackStatement(importIndex int, sub *Statement, t *Type) *Statement {
	return &Statement{kind: StmtFromImportedStack, cachedType: t, importIndex: importIndex, sub: sub}
}

func SetAddressStatement(addr VariableAddress, value *Statement, t *Type) *Statement {
	return &Statement{kind: StmtSetAddress, cachedType: t, address: addr, value: value}
}

func ArmStackStatement(fn *Statement, t *Type) *Statement {
	return &Statement{kind: StmtArmStack, cachedType: t, fn: fn}
}

func IfStatement(cond, then, els *Statement, t *Type) *Statement {
	return &Statement{kind: StmtIf, cachedType: t, cond: cond, then: then, els: els}
}

func WhileStatement(cond, body *Statement, t *Type) *Statement {
	return &Statement{kind: StmtWhile, cachedType: t, cond: cond, body: body}
}

func DoUntilStatement(cond, body *Statement, t *Type) *Statement {
	return &Statement{kind: StmtDoUntil, cachedType: t, cond: cond, body: body}
}

func EmitEffectStatement(value *Statement, t *Type) *Statement {
	return &Statement{kind: StmtEmitEffect, cachedType: t, value: value}
}

func HandleEffectStatement(handler, body *Statement, t *Type) *Statement {
	return &Statement{kind: StmtHandleEffect, cachedType: t, handler: handler, body: body}
}

func BuildTupleStatement(elems []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtBuildTuple, cachedType: t, children: elems}
}

func BuildListStatement(elems []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtBuildList, cachedType: t, children: elems}
}

func BuildSetStatement(elems []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtBuildSet, cachedType: t, children: elems}
}

func BuildTableStatement(pairs []TablePair, t *Type) *Statement {
	return &Statement{kind: StmtBuildTable, cachedType: t, pairs: pairs}
}

func BuildCompositeStatement(names []string, values []*Statement, t *Type) *Statement {
	return &Statement{kind: StmtBuildComposite, cachedType: t, fieldNames: names, children: values}
}

func UnaryStatement(op ArithOp, operand *Statement, t *Type) *Statement {
	return &Statement{kind: StmtUnary, cachedType: t, op: op, operand: operand}
}

func BinaryStatement(op ArithOp, lhs, rhs *Statement, t *Type) *Statement {
	return &Statement{kind: StmtBinary, cachedType: t, op: op, lhs: lhs, rhs: rhs}
}

// --- accessors -------------------------------------------------------------

func (s *Statement) Constant() Value              { return s.constant }
func (s *Statement) Callee() *Statement           { return s.callee }
func (s *Statement) Args() []*Statement           { return s.args }
func (s *Statement) Dispatchees() []DispatchCase  { return s.dispatchees }
func (s *Statement) Children() []*Statement       { return s.children }
func (s *Statement) Slot() int                    { return s.slot }
func (s *Statement) ImportIndex() int             { return s.importIndex }
func (s *Statement) Sub() *Statement              { return s.sub }
func (s *Statement) Address() VariableAddress     { return s.address }
func (s *Statement) Value() *Statement            { return s.value }
func (s *Statement) Fn() *Statement               { return s.fn }
func (s *Statement) Cond() *Statement             { return s.cond }
func (s *Statement) Then() *Statement             { return s.then }
func (s *Statement) Else() *Statement             { return s.els }
func (s *Statement) Body() *Statement             { return s.body }
func (s *Statement) Handler() *Statement          { return s.handler }
func (s *Statement) Pairs() []TablePair           { return s.pairs }
func (s *Statement) FieldNames() []string         { return s.fieldNames }
func (s *Statement) Op() ArithOp                  { return s.op }
func (s *Statement) Operand() *Statement          { return s.operand }
func (s *Statement) Lhs() *Statement              { return s.lhs }
func (s *Statement) Rhs() *Statement              { return s.rhs }

// StatementEqual is structural over all fields, including cachedType
// (§4.1).
func StatementEqual(a, b *Statement) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || !TypeEqual(a.cachedType, b.cachedType) {
		return false
	}
	switch a.kind {
	case StmtNone:
		return true
	case StmtConstant:
		return Equal(a.constant, b.constant)
	case StmtFunctionCall:
		return StatementEqual(a.callee, b.callee) && statementSliceEqual(a.args, b.args)
	case StmtDispatch:
		if len(a.dispatchees) != len(b.dispatchees) || !statementSliceEqual(a.args, b.args) {
			return false
		}
		for i := range a.dispatchees {
			if !typeSliceEqual(a.dispatchees[i].ArgTypes, b.dispatchees[i].ArgTypes) ||
				!StatementEqual(a.dispatchees[i].Body, b.dispatchees[i].Body) {
				return false
			}
		}
		return true
	case StmtSequence, StmtBuildTuple, StmtBuildList, StmtBuildSet:
		return statementSliceEqual(a.children, b.children)
	case StmtBuildComposite:
		if len(a.fieldNames) != len(b.fieldNames) {
			return false
		}
		for i := range a.fieldNames {
			if a.fieldNames[i] != b.fieldNames[i] {
				return false
			}
		}
		return statementSliceEqual(a.children, b.children)
	case StmtBuildTable:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if !StatementEqual(a.pairs[i].Key, b.pairs[i].Key) || !StatementEqual(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	case StmtVariableGet:
		return a.slot == b.slot
	case StmtVariableGetLazy:
		return a.slot == b.slot && StatementEqual(a.value, b.value)
	case StmtVariableSet:
		return a.slot == b.slot && StatementEqual(a.value, b.value)
	case StmtFromImportedStack:
		return a.importIndex == b.importIndex && StatementEqual(a.sub, b.sub)
	case StmtSetAddress:
		return addressEqual(a.address, b.address) && StatementEqual(a.value, b.value)
	case StmtArmStack:
		return StatementEqual(a.fn, b.fn)
	case StmtIf:
		return StatementEqual(a.cond, b.cond) && StatementEqual(a.then, b.then) && StatementEqual(a.els, b.els)
	case StmtWhile, StmtDoUntil:
		return StatementEqual(a.cond, b.cond) && StatementEqual(a.body, b.body)
	case StmtEmitEffect:
		return StatementEqual(a.value, b.value)
	case StmtHandleEffect:
		return StatementEqual(a.handler, b.handler) && StatementEqual(a.body, b.body)
	case StmtUnary:
		return a.op == b.op && StatementEqual(a.operand, b.operand)
	case StmtBinary:
		return a.op == b.op && StatementEqual(a.lhs, b.lhs) && StatementEqual(a.rhs, b.rhs)
	default:
		return false
	}
}

func statementSliceEqual(a, b []*Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !StatementEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func typeSliceEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !TypeEqual(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

func addressEqual(a, b VariableAddress) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HashStatement hashes a Statement structurally, folding in cachedType
// (§3.5 requires it populated, so this never sees a nil type on a
// well-formed tree).
func HashStatement(s *Statement) uint64 {
	if s == nil {
		return nilSentinel
	}
	h := fnvMix(fnvOffset, uint64(s.kind))
	h = fnvMix(h, HashType(s.cachedType))
	switch s.kind {
	case StmtConstant:
		h = fnvMix(h, Hash(s.constant))
	case StmtVariableGet:
		h = fnvMix(h, uint64(s.slot))
	case StmtUnary:
		h = fnvMix(h, uint64(s.op))
		h = fnvMix(h, HashStatement(s.operand))
	case StmtBinary:
		h = fnvMix(h, uint64(s.op))
		h = fnvMix(h, HashStatement(s.lhs))
		h = fnvMix(h, HashStatement(s.rhs))
	case StmtSequence, StmtBuildTuple, StmtBuildList, StmtBuildSet, StmtBuildComposite:
		for _, c := range s.children {
			h = fnvMix(h, HashStatement(c))
		}
	}
	return h
}
