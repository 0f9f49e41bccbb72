package compile

import (
	"context"
	"errors"
	"testing"

	"github.com/latticevm/corevm/internal/eval"
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

func runProgram(t *testing.T, top []Expr) (rt.Value, error) {
	t.Helper()
	prog, err := CompileProgram(top)
	if err != nil {
		return rt.Value{}, err
	}
	stack := prog.Context.NewStack(nil)
	return eval.New().Eval(context.Background(), prog.Code, stack)
}

func wantInt(t *testing.T, v rt.Value, err error, want int64) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != rt.KindInteger {
		t.Fatalf("got kind %s, want Integer", v.Kind())
	}
	if v.AsInt() != want {
		t.Fatalf("got %d, want %d", v.AsInt(), want)
	}
}

func wantFloat(t *testing.T, v rt.Value, err error, want float64) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != rt.KindFloat {
		t.Fatalf("got kind %s, want Float", v.Kind())
	}
	if v.AsFloat() != want {
		t.Fatalf("got %v, want %v", v.AsFloat(), want)
	}
}

func wantString(t *testing.T, v rt.Value, err error, want string) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != rt.KindString {
		t.Fatalf("got kind %s, want String", v.Kind())
	}
	if v.AsString() != want {
		t.Fatalf("got %q, want %q", v.AsString(), want)
	}
}

func wantCompileError(t *testing.T, v rt.Value, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a CompileError, got value %v", v)
	}
	var ce *errs.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *errs.CompileError, got %T: %v", err, err)
	}
}

// Scenario 1: 1 + 1 -> integer 2
func TestScenario_IntegerAddition(t *testing.T) {
	v, err := runProgram(t, []Expr{
		BinOp{Op: rt.OpAdd, Lhs: IntLit{1}, Rhs: IntLit{1}},
	})
	wantInt(t, v, err, 2)
}

// Scenario 2: 1 + 1.0 -> CompileError (Add requires matching operand kinds)
func TestScenario_MixedKindAdditionRejected(t *testing.T) {
	v, err := runProgram(t, []Expr{
		BinOp{Op: rt.OpAdd, Lhs: IntLit{1}, Rhs: FloatLit{1.0}},
	})
	wantCompileError(t, v, err)
}

// Scenario 3: a = "abcd"; a -> string "abcd"
func TestScenario_StringAssignAndRead(t *testing.T) {
	v, err := runProgram(t, []Expr{
		Assign{Name: "a", Value: StringLit{"abcd"}},
		Ident{"a"},
	})
	wantString(t, v, err, "abcd")
}

// Scenario 4: a = (b = do c = 1); a + (b + 3) + c -> integer 6
// `do ... end` is a Group: it leaks its declarations into the enclosing
// scope rather than opening a new one, so c stays visible afterward.
func TestScenario_GroupLeaksDeclarations(t *testing.T) {
	v, err := runProgram(t, []Expr{
		Assign{
			Name: "a",
			Value: Assign{
				Name:  "b",
				Value: Group{Body: []Expr{Assign{Name: "c", Value: IntLit{1}}}},
			},
		},
		BinOp{
			Op: rt.OpAdd,
			Lhs: BinOp{
				Op:  rt.OpAdd,
				Lhs: Ident{"a"},
				Rhs: BinOp{Op: rt.OpAdd, Lhs: Ident{"b"}, Rhs: IntLit{3}},
			},
			Rhs: Ident{"c"},
		},
	})
	wantInt(t, v, err, 6)
}

// Scenario 5: 9 * (1 + 4) / 2 - 3f -> float 19.5 ("/" always promotes to
// float division, so the trailing "- 3f" runs against a float LHS)
func TestScenario_SlashAlwaysPromotesToFloat(t *testing.T) {
	v, err := runProgram(t, []Expr{
		BinOp{
			Op: rt.OpSub,
			Lhs: BinOp{
				Op: rt.OpDiv,
				Lhs: BinOp{
					Op:  rt.OpMul,
					Lhs: IntLit{9},
					Rhs: BinOp{Op: rt.OpAdd, Lhs: IntLit{1}, Rhs: IntLit{4}},
				},
				Rhs: IntLit{2},
			},
			Rhs: FloatLit{3.0},
		},
	})
	wantFloat(t, v, err, 19.5)
}

// Scenario 6: 9 * (1 + 4) div 2 - 3 -> integer 19 ("div" truncates and
// stays in Integer)
func TestScenario_DivTruncatesInteger(t *testing.T) {
	v, err := runProgram(t, []Expr{
		BinOp{
			Op: rt.OpSub,
			Lhs: BinOp{
				Op: rt.OpIntDiv,
				Lhs: BinOp{
					Op:  rt.OpMul,
					Lhs: IntLit{9},
					Rhs: BinOp{Op: rt.OpAdd, Lhs: IntLit{1}, Rhs: IntLit{4}},
				},
				Rhs: IntLit{2},
			},
			Rhs: IntLit{3},
		},
	})
	wantInt(t, v, err, 19)
}

// Scenario 7: foo(x) = x + 1; foo(3) -> integer 4. x has no declared type,
// so x + 1 lowers to a Dyn instruction resolved from x's runtime kind.
func TestScenario_UntypedClosureCall(t *testing.T) {
	v, err := runProgram(t, []Expr{
		FuncDef{
			Name:   "foo",
			Params: []Param{{Name: "x"}},
			Body:   BinOp{Op: rt.OpAdd, Lhs: Ident{"x"}, Rhs: IntLit{1}},
		},
		Call{Callee: Ident{"foo"}, Args: []Expr{IntLit{3}}},
	})
	wantInt(t, v, err, 4)
}

// Scenario 8: gcd(a: Int, b: Int): Int = if b == 0 then a else gcd(b, a mod b); gcd(12, 42) -> integer 6
// A name with exactly one FuncDef compiles to a self-recursive closure.
func TestScenario_RecursiveClosure(t *testing.T) {
	v, err := runProgram(t, []Expr{
		FuncDef{
			Name: "gcd",
			Params: []Param{
				{Name: "a", Type: rt.IntegerType},
				{Name: "b", Type: rt.IntegerType},
			},
			ReturnType: rt.IntegerType,
			Body: If{
				Cond: BinOp{Op: rt.OpEq, Lhs: Ident{"b"}, Rhs: IntLit{0}},
				Then: Ident{"a"},
				Else: Call{
					Callee: Ident{"gcd"},
					Args: []Expr{
						Ident{"b"},
						BinOp{Op: rt.OpMod, Lhs: Ident{"a"}, Rhs: Ident{"b"}},
					},
				},
			},
		},
		Call{Callee: Ident{"gcd"}, Args: []Expr{IntLit{12}, IntLit{42}}},
	})
	wantInt(t, v, err, 6)
}

// Scenario 9: foo(x) = x + 1; foo(x: Int) = x - 1; foo(3) -> integer 2.
// Two overloads compile to a Dispatch; the Int-specific candidate is a
// closer match than Any and wins.
func TestScenario_DispatchSpecificityWins(t *testing.T) {
	v, err := runProgram(t, []Expr{
		FuncDef{
			Name:   "foo",
			Params: []Param{{Name: "x"}},
			Body:   BinOp{Op: rt.OpAdd, Lhs: Ident{"x"}, Rhs: IntLit{1}},
		},
		FuncDef{
			Name:   "foo",
			Params: []Param{{Name: "x", Type: rt.IntegerType}},
			Body:   BinOp{Op: rt.OpSub, Lhs: Ident{"x"}, Rhs: IntLit{1}},
		},
		Call{Callee: Ident{"foo"}, Args: []Expr{IntLit{3}}},
	})
	wantInt(t, v, err, 2)
}

// Scenario 10: foo(x: Float) = x - 1.0; foo(x) = x + 1; foo(3) -> integer 4.
// The Float candidate's declared kind mismatches an Integer argument and
// is eliminated outright, leaving only the Any fallback.
func TestScenario_DispatchEliminatesKindMismatch(t *testing.T) {
	v, err := runProgram(t, []Expr{
		FuncDef{
			Name:   "foo",
			Params: []Param{{Name: "x", Type: rt.FloatType}},
			Body:   BinOp{Op: rt.OpSub, Lhs: Ident{"x"}, Rhs: FloatLit{1.0}},
		},
		FuncDef{
			Name:   "foo",
			Params: []Param{{Name: "x"}},
			Body:   BinOp{Op: rt.OpAdd, Lhs: Ident{"x"}, Rhs: IntLit{1}},
		},
		Call{Callee: Ident{"foo"}, Args: []Expr{IntLit{3}}},
	})
	wantInt(t, v, err, 4)
}

// LazyAssign defers its initializer until the first read; a non-cyclic
// use should behave exactly like an eager assignment from the caller's
// perspective.
func TestLazyAssign_EvaluatesOnFirstRead(t *testing.T) {
	v, err := runProgram(t, []Expr{
		LazyAssign{Name: "z", Value: BinOp{Op: rt.OpAdd, Lhs: IntLit{10}, Rhs: IntLit{5}}},
		BinOp{Op: rt.OpMul, Lhs: Ident{"z"}, Rhs: IntLit{2}},
	})
	wantInt(t, v, err, 30)
}

// A lambda closes over its defining scope; calling it runs its body
// against a fresh activation that still sees the captured variable.
func TestLambda_ClosesOverEnclosingScope(t *testing.T) {
	v, err := runProgram(t, []Expr{
		Assign{Name: "n", Value: IntLit{10}},
		Call{
			Callee: Lambda{
				Params: []Param{{Name: "x"}},
				Body:   BinOp{Op: rt.OpAdd, Lhs: Ident{"x"}, Rhs: Ident{"n"}},
			},
			Args: []Expr{IntLit{5}},
		},
	})
	wantInt(t, v, err, 15)
}

// HandleEffect catches an Effect its body emits and runs the handler
// against the effect's carried payload.
func TestHandleEffect_CatchesEmittedEffect(t *testing.T) {
	v, err := runProgram(t, []Expr{
		HandleEffect{
			Body: EmitEffect{Value: IntLit{7}},
			Handler: Lambda{
				Params: []Param{{Name: "payload"}},
				Body:   BinOp{Op: rt.OpAdd, Lhs: Ident{"payload"}, Rhs: IntLit{1}},
			},
		},
	})
	wantInt(t, v, err, 8)
}

// EmitEffect reaching the top with no enclosing HandleEffect surfaces as
// an unhandled Effect value, not a Go error.
func TestEmitEffect_UnhandledReachesTop(t *testing.T) {
	v, err := runProgram(t, []Expr{
		EmitEffect{Value: StringLit{"boom"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != rt.KindEffect {
		t.Fatalf("got kind %s, want Effect", v.Kind())
	}
	if inner := v.EffectInner(); inner.AsString() != "boom" {
		t.Fatalf("got payload %q, want %q", inner.AsString(), "boom")
	}
}
