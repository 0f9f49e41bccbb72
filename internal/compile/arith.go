package compile

import (
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/frame"
	"github.com/latticevm/corevm/internal/rt"
)

func isNumericKind(k rt.TypeKind) bool {
	return k == rt.TypeInteger || k == rt.TypeUnsigned || k == rt.TypeFloat
}

func promoteToFloat(s *rt.Statement) *rt.Statement {
	if s.Type().Kind() == rt.TypeFloat {
		return s
	}
	return rt.UnaryStatement(rt.OpToFloat, s, rt.FloatType)
}

func (c *Compiler) compileBinOp(scope *frame.Scope, n BinOp) (*rt.Statement, error) {
	lhs, err := c.Compile(scope, n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := c.Compile(scope, n.Rhs)
	if err != nil {
		return nil, err
	}

	lk, rk := lhs.Type().Kind(), rhs.Type().Kind()
	// An Any-typed operand (an untyped function parameter, most commonly)
	// defers the numeric/kind check to the runtime Dyn instructions —
	// there is nothing to check statically yet (§4.4).
	dynamic := !lk.IsConcrete() || !rk.IsConcrete()

	switch n.Op {
	case rt.OpEq, rt.OpNeq:
		return rt.BinaryStatement(n.Op, lhs, rhs, rt.BooleanType), nil

	case rt.OpDiv:
		if !dynamic && (!isNumericKind(lk) || !isNumericKind(rk)) {
			return nil, &errs.CompileError{Reason: "/ requires numeric operands"}
		}
		return rt.BinaryStatement(rt.OpDiv, promoteToFloat(lhs), promoteToFloat(rhs), rt.FloatType), nil

	case rt.OpLt, rt.OpLe, rt.OpGt, rt.OpGe:
		if !dynamic && (!isNumericKind(lk) || !isNumericKind(rk) || lk != rk) {
			return nil, &errs.CompileError{Reason: n.Op.String() + ": operand type mismatch"}
		}
		return rt.BinaryStatement(n.Op, lhs, rhs, rt.BooleanType), nil

	case rt.OpAdd, rt.OpSub, rt.OpMul, rt.OpIntDiv, rt.OpMod:
		if dynamic {
			return rt.BinaryStatement(n.Op, lhs, rhs, rt.AnyType), nil
		}
		if !isNumericKind(lk) || !isNumericKind(rk) {
			return nil, &errs.CompileError{Reason: n.Op.String() + " requires numeric operands"}
		}
		if lk != rk {
			return nil, &errs.CompileError{Reason: n.Op.String() + ": operand type mismatch"}
		}
		if (n.Op == rt.OpIntDiv || n.Op == rt.OpMod) && lk == rt.TypeFloat {
			return nil, &errs.CompileError{Reason: n.Op.String() + " does not apply to Float"}
		}
		return rt.BinaryStatement(n.Op, lhs, rhs, lhs.Type()), nil

	default:
		return nil, &errs.CompileError{Reason: "unsupported binary operator " + n.Op.String()}
	}
}

func (c *Compiler) compileUnOp(scope *frame.Scope, n UnOp) (*rt.Statement, error) {
	operand, err := c.Compile(scope, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case rt.OpNeg:
		k := operand.Type().Kind()
		if k.IsConcrete() && !isNumericKind(k) {
			return nil, &errs.CompileError{Reason: "neg requires a numeric operand"}
		}
		resultT := operand.Type()
		if !k.IsConcrete() {
			resultT = rt.AnyType
		}
		return rt.UnaryStatement(rt.OpNeg, operand, resultT), nil
	case rt.OpNot:
		if operand.Type().Kind() != rt.TypeBoolean {
			return nil, &errs.CompileError{Reason: "not requires a Boolean operand"}
		}
		return rt.UnaryStatement(rt.OpNot, operand, rt.BooleanType), nil
	default:
		return nil, &errs.CompileError{Reason: "unsupported unary operator " + n.Op.String()}
	}
}
