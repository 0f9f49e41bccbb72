package rt

import "github.com/latticevm/corevm/internal/errs"

// Lower translates a compiler-produced Statement tree into the executable
// Instruction form the evaluator consumes: constants copy across
// verbatim, growable sequences become fixed-length slices, SetAddress's
// address sequence is carried unchanged, and arithmetic/comparison
// operators are resolved by operand kind into a promoted top-level
// Instruction variant (§4.4).
func Lower(s *Statement) (*Instruction, error) {
	if s == nil {
		return &Instruction{kind: InstrNoOp}, nil
	}
	switch s.kind {
	case StmtNone:
		return &Instruction{kind: InstrNoOp}, nil
	case StmtConstant:
		return &Instruction{kind: InstrConstant, constant: s.constant}, nil
	case StmtFunctionCall:
		callee, err := Lower(s.callee)
		if err != nil {
			return nil, err
		}
		args, err := lowerAll(s.args)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrFunctionCall, callee: callee, args: args}, nil
	case StmtDispatch:
		targets := make([]DispatchTarget, len(s.dispatchees))
		for i, d := range s.dispatchees {
			body, err := Lower(d.Body)
			if err != nil {
				return nil, err
			}
			targets[i] = DispatchTarget{ArgTypes: d.ArgTypes, Body: body, Template: NewStack(nil, d.SlotCount)}
		}
		args, err := lowerAll(s.args)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrDispatch, dispatchees: targets, args: args}, nil
	case StmtSequence:
		children, err := lowerAll(s.children)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrSequence, children: children}, nil
	case StmtVariableGet:
		return &Instruction{kind: InstrVariableGet, slot: s.slot}, nil
	case StmtVariableGetLazy:
		init, err := Lower(s.value)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrVariableGetLazy, slot: s.slot, value: init}, nil
	case StmtVariableSet:
		v, err := Lower(s.value)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrVariableSet, slot: s.slot, value: v}, nil
	case StmtFromImportedStack:
		sub, err := Lower(s.sub)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrFromImportedStack, importIndex: s.importIndex, sub: sub}, nil
	case StmtSetAddress:
		v, err := Lower(s.value)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrSetAddress, address: s.address, value: v}, nil
	case StmtArmStack:
		fn, err := Lower(s.fn)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrArmStack, fn: fn}, nil
	case StmtIf:
		cond, err := Lower(s.cond)
		if err != nil {
			return nil, err
		}
		then, err := Lower(s.then)
		if err != nil {
			return nil, err
		}
		var els *Instruction
		if s.els != nil {
			els, err = Lower(s.els)
			if err != nil {
				return nil, err
			}
		}
		return &Instruction{kind: InstrIf, cond: cond, then: then, els: els}, nil
	case StmtWhile, StmtDoUntil:
		cond, err := Lower(s.cond)
		if err != nil {
			return nil, err
		}
		body, err := Lower(s.body)
		if err != nil {
			return nil, err
		}
		kind := InstrWhile
		if s.kind == StmtDoUntil {
			kind = InstrDoUntil
		}
		return &Instruction{kind: kind, cond: cond, body: body}, nil
	case StmtEmitEffect:
		v, err := Lower(s.value)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrEmitEffect, value: v}, nil
	case StmtHandleEffect:
		handler, err := Lower(s.handler)
		if err != nil {
			return nil, err
		}
		body, err := Lower(s.body)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: InstrHandleEffect, handler: handler, body: body}, nil
	case StmtBuildTuple, StmtBuildList, StmtBuildSet:
		children, err := lowerAll(s.children)
		if err != nil {
			return nil, err
		}
		kind := InstrBuildTuple
		switch s.kind {
		case StmtBuildList:
			kind = InstrBuildList
		case StmtBuildSet:
			kind = InstrBuildSet
		}
		return &Instruction{kind: kind, children: children}, nil
	case StmtBuildTable:
		entries := make([]TableEntry, len(s.pairs))
		for i, p := range s.pairs {
			k, err := Lower(p.Key)
			if err != nil {
				return nil, err
			}
			v, err := Lower(p.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = TableEntry{Key: k, Value: v}
		}
		return &Instruction{kind: InstrBuildTable, pairs: entries}, nil
	case StmtBuildComposite:
		children, err := lowerAll(s.children)
		if err != nil {
			return nil, err
		}
		names := append([]string{}, s.fieldNames...)
		return &Instruction{kind: InstrBuildComposite, fieldNames: names, children: children}, nil
	case StmtUnary:
		operand, err := Lower(s.operand)
		if err != nil {
			return nil, err
		}
		kind, err := unaryInstructionKind(s.op, s.operand.cachedType)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: kind, operand: operand}, nil
	case StmtBinary:
		lhs, err := Lower(s.lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := Lower(s.rhs)
		if err != nil {
			return nil, err
		}
		opType := s.lhs.cachedType
		if numericKind(s.rhs.cachedType) != numericKind(opType) {
			// A concrete lhs paired with an Any-typed rhs still needs the
			// runtime Dyn path.
			opType = AnyType
		}
		kind, err := binaryInstructionKind(s.op, opType)
		if err != nil {
			return nil, err
		}
		return &Instruction{kind: kind, lhs: lhs, rhs: rhs}, nil
	default:
		return nil, &errs.CompileError{Reason: "lower: unknown statement kind"}
	}
}

func lowerAll(stmts []*Statement) ([]*Instruction, error) {
	out := make([]*Instruction, len(stmts))
	for i, s := range stmts {
		instr, err := Lower(s)
		if err != nil {
			return nil, err
		}
		out[i] = instr
	}
	return out, nil
}

func unaryInstructionKind(op ArithOp, operandType *Type) (InstructionKind, error) {
	if op == OpNot {
		return InstrLogicalNot, nil
	}
	if op == OpToFloat {
		return InstrToFloat, nil
	}
	if op != OpNeg {
		return 0, &errs.CompileError{Reason: "lower: unary op " + op.String() + " has no unary lowering"}
	}
	switch numericKind(operandType) {
	case TypeInteger:
		return InstrNegInt, nil
	case TypeUnsigned:
		return InstrNegUint, nil
	case TypeFloat:
		return InstrNegFloat, nil
	default:
		return InstrNegDyn, nil
	}
}

func binaryInstructionKind(op ArithOp, lhsType *Type) (InstructionKind, error) {
	switch op {
	case OpEq:
		return InstrCompareEq, nil
	case OpNeq:
		return InstrCompareNeq, nil
	case OpLt:
		return InstrCompareLt, nil
	case OpLe:
		return InstrCompareLe, nil
	case OpGt:
		return InstrCompareGt, nil
	case OpGe:
		return InstrCompareGe, nil
	}
	kind := numericKind(lhsType)
	switch op {
	case OpAdd:
		switch kind {
		case TypeInteger:
			return InstrAddInt, nil
		case TypeUnsigned:
			return InstrAddUint, nil
		case TypeFloat:
			return InstrAddFloat, nil
		default:
			return InstrAddDyn, nil
		}
	case OpSub:
		switch kind {
		case TypeInteger:
			return InstrSubInt, nil
		case TypeUnsigned:
			return InstrSubUint, nil
		case TypeFloat:
			return InstrSubFloat, nil
		default:
			return InstrSubDyn, nil
		}
	case OpMul:
		switch kind {
		case TypeInteger:
			return InstrMulInt, nil
		case TypeUnsigned:
			return InstrMulUint, nil
		case TypeFloat:
			return InstrMulFloat, nil
		default:
			return InstrMulDyn, nil
		}
	case OpDiv:
		// "/" always promotes to float division; the compiler inserts
		// OpToFloat conversions on both operands before emitting this node,
		// so lhsType is always Float by the time Lower sees it.
		return InstrDivFloat, nil
	case OpIntDiv:
		switch kind {
		case TypeInteger:
			return InstrDivInt, nil
		case TypeUnsigned:
			return InstrDivUint, nil
		default:
			return InstrDivIntDyn, nil
		}
	case OpMod:
		switch kind {
		case TypeInteger:
			return InstrModInt, nil
		case TypeUnsigned:
			return InstrModUint, nil
		default:
			return InstrModDyn, nil
		}
	}
	return 0, &errs.CompileError{Reason: "lower: operator " + op.String() + " has no lowering for this operand type"}
}

// numericKind reports the concrete numeric TypeKind of t, or TypeAny if t
// is not one of Integer/Unsigned/Float — including when t is itself a
// typeclass, which callers lower to the Dyn instruction variants.
func numericKind(t *Type) TypeKind {
	if t == nil || !t.kind.IsConcrete() {
		return TypeAny
	}
	switch t.kind {
	case TypeInteger, TypeUnsigned, TypeFloat:
		return t.kind
	default:
		return TypeAny
	}
}
