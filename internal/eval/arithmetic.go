package eval

import (
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

func evalUnary(kind rt.InstructionKind, operand rt.Value) (rt.Value, error) {
	switch kind {
	case rt.InstrNegInt:
		return rt.Int(-operand.AsInt()), nil
	case rt.InstrNegUint:
		return rt.Uint(-operand.AsUint()), nil
	case rt.InstrNegFloat:
		return rt.Float(-operand.AsFloat()), nil
	case rt.InstrLogicalNot:
		if operand.Kind() != rt.KindBoolean {
			return rt.Value{}, &errs.TypeMismatchError{Expected: "Boolean", Actual: operand.Kind().String()}
		}
		return rt.Bool(!operand.AsBool()), nil
	case rt.InstrToFloat:
		switch operand.Kind() {
		case rt.KindInteger:
			return rt.Float(float64(operand.AsInt())), nil
		case rt.KindUnsigned:
			return rt.Float(float64(operand.AsUint())), nil
		case rt.KindFloat:
			return operand, nil
		default:
			return rt.Value{}, &errs.TypeMismatchError{Expected: "Integer, Unsigned or Float", Actual: operand.Kind().String()}
		}
	case rt.InstrNegDyn:
		switch operand.Kind() {
		case rt.KindInteger:
			return rt.Int(-operand.AsInt()), nil
		case rt.KindUnsigned:
			return rt.Uint(-operand.AsUint()), nil
		case rt.KindFloat:
			return rt.Float(-operand.AsFloat()), nil
		default:
			return rt.Value{}, &errs.TypeMismatchError{Expected: "Integer, Unsigned or Float", Actual: operand.Kind().String()}
		}
	default:
		return rt.Value{}, &errs.DomainError{Reason: "unknown unary instruction"}
	}
}

func evalBinary(kind rt.InstructionKind, lhs, rhs rt.Value) (rt.Value, error) {
	switch kind {
	case rt.InstrAddInt:
		return rt.Int(lhs.AsInt() + rhs.AsInt()), nil
	case rt.InstrSubInt:
		return rt.Int(lhs.AsInt() - rhs.AsInt()), nil
	case rt.InstrMulInt:
		return rt.Int(lhs.AsInt() * rhs.AsInt()), nil
	case rt.InstrDivInt:
		if rhs.AsInt() == 0 {
			return rt.Value{}, &errs.DomainError{Reason: "integer division by zero"}
		}
		return rt.Int(lhs.AsInt() / rhs.AsInt()), nil
	case rt.InstrModInt:
		if rhs.AsInt() == 0 {
			return rt.Value{}, &errs.DomainError{Reason: "integer modulo by zero"}
		}
		return rt.Int(lhs.AsInt() % rhs.AsInt()), nil

	case rt.InstrAddUint:
		return rt.Uint(lhs.AsUint() + rhs.AsUint()), nil
	case rt.InstrSubUint:
		return rt.Uint(lhs.AsUint() - rhs.AsUint()), nil
	case rt.InstrMulUint:
		return rt.Uint(lhs.AsUint() * rhs.AsUint()), nil
	case rt.InstrDivUint:
		if rhs.AsUint() == 0 {
			return rt.Value{}, &errs.DomainError{Reason: "unsigned division by zero"}
		}
		return rt.Uint(lhs.AsUint() / rhs.AsUint()), nil
	case rt.InstrModUint:
		if rhs.AsUint() == 0 {
			return rt.Value{}, &errs.DomainError{Reason: "unsigned modulo by zero"}
		}
		return rt.Uint(lhs.AsUint() % rhs.AsUint()), nil

	case rt.InstrAddFloat:
		return rt.Float(lhs.AsFloat() + rhs.AsFloat()), nil
	case rt.InstrSubFloat:
		return rt.Float(lhs.AsFloat() - rhs.AsFloat()), nil
	case rt.InstrMulFloat:
		return rt.Float(lhs.AsFloat() * rhs.AsFloat()), nil
	case rt.InstrDivFloat:
		return rt.Float(lhs.AsFloat() / rhs.AsFloat()), nil // IEEE-754 result, including Inf/NaN

	case rt.InstrCompareEq:
		return rt.Bool(rt.Equal(lhs, rhs)), nil
	case rt.InstrCompareNeq:
		return rt.Bool(!rt.Equal(lhs, rhs)), nil
	case rt.InstrCompareLt, rt.InstrCompareLe, rt.InstrCompareGt, rt.InstrCompareGe:
		return compareOrdered(kind, lhs, rhs)

	case rt.InstrAddDyn, rt.InstrSubDyn, rt.InstrMulDyn, rt.InstrDivIntDyn, rt.InstrModDyn:
		return evalDynArith(kind, lhs, rhs)

	default:
		return rt.Value{}, &errs.DomainError{Reason: "unknown binary instruction"}
	}
}

// evalDynArith backs arithmetic whose static operand type was Any: the
// concrete numeric kind is read off the runtime values instead of a
// cached type (§4.4).
func evalDynArith(kind rt.InstructionKind, lhs, rhs rt.Value) (rt.Value, error) {
	if lhs.Kind() != rhs.Kind() {
		return rt.Value{}, &errs.TypeMismatchError{Expected: lhs.Kind().String(), Actual: rhs.Kind().String()}
	}
	switch lhs.Kind() {
	case rt.KindInteger:
		switch kind {
		case rt.InstrAddDyn:
			return rt.Int(lhs.AsInt() + rhs.AsInt()), nil
		case rt.InstrSubDyn:
			return rt.Int(lhs.AsInt() - rhs.AsInt()), nil
		case rt.InstrMulDyn:
			return rt.Int(lhs.AsInt() * rhs.AsInt()), nil
		case rt.InstrDivIntDyn:
			if rhs.AsInt() == 0 {
				return rt.Value{}, &errs.DomainError{Reason: "integer division by zero"}
			}
			return rt.Int(lhs.AsInt() / rhs.AsInt()), nil
		default: // InstrModDyn
			if rhs.AsInt() == 0 {
				return rt.Value{}, &errs.DomainError{Reason: "integer modulo by zero"}
			}
			return rt.Int(lhs.AsInt() % rhs.AsInt()), nil
		}
	case rt.KindUnsigned:
		switch kind {
		case rt.InstrAddDyn:
			return rt.Uint(lhs.AsUint() + rhs.AsUint()), nil
		case rt.InstrSubDyn:
			return rt.Uint(lhs.AsUint() - rhs.AsUint()), nil
		case rt.InstrMulDyn:
			return rt.Uint(lhs.AsUint() * rhs.AsUint()), nil
		case rt.InstrDivIntDyn:
			if rhs.AsUint() == 0 {
				return rt.Value{}, &errs.DomainError{Reason: "unsigned division by zero"}
			}
			return rt.Uint(lhs.AsUint() / rhs.AsUint()), nil
		default:
			if rhs.AsUint() == 0 {
				return rt.Value{}, &errs.DomainError{Reason: "unsigned modulo by zero"}
			}
			return rt.Uint(lhs.AsUint() % rhs.AsUint()), nil
		}
	case rt.KindFloat:
		switch kind {
		case rt.InstrAddDyn:
			return rt.Float(lhs.AsFloat() + rhs.AsFloat()), nil
		case rt.InstrSubDyn:
			return rt.Float(lhs.AsFloat() - rhs.AsFloat()), nil
		case rt.InstrMulDyn:
			return rt.Float(lhs.AsFloat() * rhs.AsFloat()), nil
		default:
			return rt.Value{}, &errs.TypeMismatchError{Expected: "Integer or Unsigned", Actual: "Float"}
		}
	default:
		return rt.Value{}, &errs.TypeMismatchError{Expected: "Integer, Unsigned or Float", Actual: lhs.Kind().String()}
	}
}

func compareOrdered(kind rt.InstructionKind, lhs, rhs rt.Value) (rt.Value, error) {
	if lhs.Kind() != rhs.Kind() {
		return rt.Value{}, &errs.TypeMismatchError{Expected: lhs.Kind().String(), Actual: rhs.Kind().String()}
	}
	var less, equal bool
	switch lhs.Kind() {
	case rt.KindInteger:
		less, equal = lhs.AsInt() < rhs.AsInt(), lhs.AsInt() == rhs.AsInt()
	case rt.KindUnsigned:
		less, equal = lhs.AsUint() < rhs.AsUint(), lhs.AsUint() == rhs.AsUint()
	case rt.KindFloat:
		less, equal = lhs.AsFloat() < rhs.AsFloat(), lhs.AsFloat() == rhs.AsFloat()
	default:
		return rt.Value{}, &errs.TypeMismatchError{Expected: "Integer, Unsigned or Float", Actual: lhs.Kind().String()}
	}
	switch kind {
	case rt.InstrCompareLt:
		return rt.Bool(less), nil
	case rt.InstrCompareLe:
		return rt.Bool(less || equal), nil
	case rt.InstrCompareGt:
		return rt.Bool(!less && !equal), nil
	default: // InstrCompareGe
		return rt.Bool(!less), nil
	}
}
