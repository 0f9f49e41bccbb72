package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/latticevm/corevm/internal/config"
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

func mustLower(t *testing.T, s *rt.Statement) *rt.Instruction {
	t.Helper()
	instr, err := rt.Lower(s)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	return instr
}

func TestEval_IntegerDivisionByZero(t *testing.T) {
	instr := mustLower(t, rt.BinaryStatement(rt.OpIntDiv,
		rt.ConstantStatement(rt.Int(5), rt.IntegerType),
		rt.ConstantStatement(rt.Int(0), rt.IntegerType),
		rt.IntegerType))
	_, err := New().Eval(context.Background(), instr, rt.NewStack(nil, 0))
	var de *errs.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected *errs.DomainError, got %T: %v", err, err)
	}
}

func TestEval_LazyGet_CachesAfterFirstRead(t *testing.T) {
	getStmt := rt.VariableGetLazyStatement(0, rt.ConstantStatement(rt.Int(42), rt.IntegerType), rt.IntegerType)
	instr := mustLower(t, getStmt)

	stack := rt.NewStack(nil, 1)
	v, err := New().Eval(context.Background(), instr, stack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("got %d, want 42", v.AsInt())
	}
	if stack.LazyState(0) != rt.LazyEvaluated {
		t.Fatalf("slot 0 should be LazyEvaluated after first read, got %v", stack.LazyState(0))
	}

	v2, err := New().Eval(context.Background(), instr, stack)
	if err != nil {
		t.Fatalf("unexpected error on second read: %v", err)
	}
	if v2.AsInt() != 42 {
		t.Fatalf("second read got %d, want 42", v2.AsInt())
	}
}

// A lazy slot whose own initializer reads the same slot again is a cycle:
// the second, re-entrant read finds the slot already Evaluating.
func TestEval_LazyGet_CycleDetected(t *testing.T) {
	inner := rt.VariableGetLazyStatement(0, rt.ConstantStatement(rt.Int(1), rt.IntegerType), rt.IntegerType)
	outer := rt.VariableGetLazyStatement(0, inner, rt.IntegerType)
	instr := mustLower(t, outer)

	stack := rt.NewStack(nil, 1)
	_, err := New().Eval(context.Background(), instr, stack)
	var de *errs.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected *errs.DomainError (cycle), got %T: %v", err, err)
	}
	if stack.LazyState(0) != rt.LazyNotEvaluated {
		t.Fatalf("slot should roll back to LazyNotEvaluated after a failed evaluation, got %v", stack.LazyState(0))
	}
}

func TestEval_WhileLoop_RespectsCancellation(t *testing.T) {
	// while true do none end -- would spin forever without cancellation.
	loop := rt.WhileStatement(
		rt.ConstantStatement(rt.Bool(true), rt.BooleanType),
		rt.NoneStatement(rt.NoneValueType),
		rt.NoneValueType,
	)
	instr := mustLower(t, loop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, err := New().Eval(ctx, instr, rt.NewStack(nil, 0))
	if err != nil {
		t.Fatalf("cancellation should surface as an Effect, not a Go error: %v", err)
	}
	if v.Kind() != rt.KindEffect {
		t.Fatalf("got kind %s, want Effect", v.Kind())
	}
}

func TestEval_DynArith_MismatchedRuntimeKinds(t *testing.T) {
	// x + y where both x and y are untyped (Any) parameters, but arrive
	// with different runtime kinds -- only discoverable at eval time.
	stmt := rt.BinaryStatement(rt.OpAdd,
		rt.VariableGetStatement(0, rt.AnyType),
		rt.VariableGetStatement(1, rt.AnyType),
		rt.AnyType,
	)
	instr := mustLower(t, stmt)
	stack := rt.NewStack(nil, 2)
	stack.Set(0, rt.Int(1))
	stack.Set(1, rt.Float(2.0))
	_, err := New().Eval(context.Background(), instr, stack)
	var tm *errs.TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("expected *errs.TypeMismatchError, got %T: %v", err, err)
	}
}

func TestNew_DefaultsToCheckingEveryIteration(t *testing.T) {
	e := New()
	if got := e.interval(); got != 1 {
		t.Errorf("got interval %d, want 1", got)
	}
}

func TestNewWithConfig_UsesSuspensionInterval(t *testing.T) {
	e := NewWithConfig(config.RuntimeConfig{SuspensionInterval: 4096})
	if got := e.interval(); got != 4096 {
		t.Errorf("got interval %d, want 4096", got)
	}
}

func TestNewWithConfig_NonPositiveIntervalFallsBackToOne(t *testing.T) {
	e := NewWithConfig(config.RuntimeConfig{SuspensionInterval: 0})
	if got := e.interval(); got != 1 {
		t.Errorf("got interval %d, want 1", got)
	}
}

func TestNewWithConfig_LargeIntervalStillCancelsEventually(t *testing.T) {
	// A large suspension interval still checks cancellation on the very
	// first iteration (iter=0 is always a multiple of any interval), so a
	// context cancelled before Eval starts is caught immediately rather
	// than only after thousands of iterations.
	loop := rt.WhileStatement(
		rt.ConstantStatement(rt.Bool(true), rt.BooleanType),
		rt.NoneStatement(rt.NoneValueType),
		rt.NoneValueType,
	)
	instr := mustLower(t, loop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewWithConfig(config.RuntimeConfig{SuspensionInterval: 4096})
	v, err := e.Eval(ctx, instr, rt.NewStack(nil, 0))
	if err != nil {
		t.Fatalf("cancellation should surface as an Effect, not a Go error: %v", err)
	}
	if v.Kind() != rt.KindEffect {
		t.Fatalf("got kind %s, want Effect", v.Kind())
	}
}
