package main

import (
	"github.com/latticevm/corevm/internal/compile"
	"github.com/latticevm/corevm/internal/rt"
)

// scenario is one named end-to-end program the demo binary can run.
type scenario struct {
	name string
	desc string
	top  []compile.Expr
}

// scenarios reproduces the ten canonical end-to-end programs, expressed
// against the toy compile.Expr tree the same way internal/compile's tests
// build them, plus five more: lazy assignment, a capturing lambda, a
// handled and an unhandled effect, and one that exercises the prelude
// natives registered in main.go.
func scenarios() []scenario {
	return []scenario{
		{
			name: "add",
			desc: "1 + 1",
			top: []compile.Expr{
				compile.BinOp{Op: rt.OpAdd, Lhs: compile.IntLit{Value: 1}, Rhs: compile.IntLit{Value: 1}},
			},
		},
		{
			name: "mixed-kind-add-rejected",
			desc: "1 + 1.0 (compile error, kept for demonstration -- run separately)",
			top: []compile.Expr{
				compile.BinOp{Op: rt.OpAdd, Lhs: compile.IntLit{Value: 1}, Rhs: compile.FloatLit{Value: 1.0}},
			},
		},
		{
			name: "string-assign",
			desc: `a = "abcd"; a`,
			top: []compile.Expr{
				compile.Assign{Name: "a", Value: compile.StringLit{Value: "abcd"}},
				compile.Ident{Name: "a"},
			},
		},
		{
			name: "group-leaks-declarations",
			desc: "a = (b = do c = 1); a + (b + 3) + c",
			top: []compile.Expr{
				compile.Assign{
					Name: "a",
					Value: compile.Assign{
						Name:  "b",
						Value: compile.Group{Body: []compile.Expr{compile.Assign{Name: "c", Value: compile.IntLit{Value: 1}}}},
					},
				},
				compile.BinOp{
					Op:  rt.OpAdd,
					Lhs: compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "a"}, Rhs: compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "b"}, Rhs: compile.IntLit{Value: 3}}},
					Rhs: compile.Ident{Name: "c"},
				},
			},
		},
		{
			name: "slash-promotes-float",
			desc: "9 * (1 + 4) / 2 - 3.0",
			top: []compile.Expr{
				compile.BinOp{
					Op: rt.OpSub,
					Lhs: compile.BinOp{
						Op:  rt.OpDiv,
						Lhs: compile.BinOp{Op: rt.OpMul, Lhs: compile.IntLit{Value: 9}, Rhs: compile.BinOp{Op: rt.OpAdd, Lhs: compile.IntLit{Value: 1}, Rhs: compile.IntLit{Value: 4}}},
						Rhs: compile.IntLit{Value: 2},
					},
					Rhs: compile.FloatLit{Value: 3.0},
				},
			},
		},
		{
			name: "div-truncates",
			desc: "9 * (1 + 4) div 2 - 3",
			top: []compile.Expr{
				compile.BinOp{
					Op: rt.OpSub,
					Lhs: compile.BinOp{
						Op:  rt.OpIntDiv,
						Lhs: compile.BinOp{Op: rt.OpMul, Lhs: compile.IntLit{Value: 9}, Rhs: compile.BinOp{Op: rt.OpAdd, Lhs: compile.IntLit{Value: 1}, Rhs: compile.IntLit{Value: 4}}},
						Rhs: compile.IntLit{Value: 2},
					},
					Rhs: compile.IntLit{Value: 3},
				},
			},
		},
		{
			name: "untyped-closure",
			desc: "foo(x) = x + 1; foo(3)",
			top: []compile.Expr{
				compile.FuncDef{Name: "foo", Params: []compile.Param{{Name: "x"}}, Body: compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "x"}, Rhs: compile.IntLit{Value: 1}}},
				compile.Call{Callee: compile.Ident{Name: "foo"}, Args: []compile.Expr{compile.IntLit{Value: 3}}},
			},
		},
		{
			name: "recursive-gcd",
			desc: "gcd(a: Int, b: Int): Int = if b == 0 then a else gcd(b, a mod b); gcd(12, 42)",
			top: []compile.Expr{
				compile.FuncDef{
					Name:       "gcd",
					Params:     []compile.Param{{Name: "a", Type: rt.IntegerType}, {Name: "b", Type: rt.IntegerType}},
					ReturnType: rt.IntegerType,
					Body: compile.If{
						Cond: compile.BinOp{Op: rt.OpEq, Lhs: compile.Ident{Name: "b"}, Rhs: compile.IntLit{Value: 0}},
						Then: compile.Ident{Name: "a"},
						Else: compile.Call{Callee: compile.Ident{Name: "gcd"}, Args: []compile.Expr{
							compile.Ident{Name: "b"},
							compile.BinOp{Op: rt.OpMod, Lhs: compile.Ident{Name: "a"}, Rhs: compile.Ident{Name: "b"}},
						}},
					},
				},
				compile.Call{Callee: compile.Ident{Name: "gcd"}, Args: []compile.Expr{compile.IntLit{Value: 12}, compile.IntLit{Value: 42}}},
			},
		},
		{
			name: "dispatch-specificity-wins",
			desc: "foo(x) = x + 1; foo(x: Int) = x - 1; foo(3)",
			top: []compile.Expr{
				compile.FuncDef{Name: "foo", Params: []compile.Param{{Name: "x"}}, Body: compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "x"}, Rhs: compile.IntLit{Value: 1}}},
				compile.FuncDef{Name: "foo", Params: []compile.Param{{Name: "x", Type: rt.IntegerType}}, Body: compile.BinOp{Op: rt.OpSub, Lhs: compile.Ident{Name: "x"}, Rhs: compile.IntLit{Value: 1}}},
				compile.Call{Callee: compile.Ident{Name: "foo"}, Args: []compile.Expr{compile.IntLit{Value: 3}}},
			},
		},
		{
			name: "dispatch-eliminates-kind-mismatch",
			desc: "foo(x: Float) = x - 1.0; foo(x) = x + 1; foo(3)",
			top: []compile.Expr{
				compile.FuncDef{Name: "foo", Params: []compile.Param{{Name: "x", Type: rt.FloatType}}, Body: compile.BinOp{Op: rt.OpSub, Lhs: compile.Ident{Name: "x"}, Rhs: compile.FloatLit{Value: 1.0}}},
				compile.FuncDef{Name: "foo", Params: []compile.Param{{Name: "x"}}, Body: compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "x"}, Rhs: compile.IntLit{Value: 1}}},
				compile.Call{Callee: compile.Ident{Name: "foo"}, Args: []compile.Expr{compile.IntLit{Value: 3}}},
			},
		},
		{
			name: "lazy-assign",
			desc: "lazy z = 10 + 5; z * 2",
			top: []compile.Expr{
				compile.LazyAssign{Name: "z", Value: compile.BinOp{Op: rt.OpAdd, Lhs: compile.IntLit{Value: 10}, Rhs: compile.IntLit{Value: 5}}},
				compile.BinOp{Op: rt.OpMul, Lhs: compile.Ident{Name: "z"}, Rhs: compile.IntLit{Value: 2}},
			},
		},
		{
			name: "lambda-closure",
			desc: "n = 10; (lambda(x) = x + n)(5)",
			top: []compile.Expr{
				compile.Assign{Name: "n", Value: compile.IntLit{Value: 10}},
				compile.Call{
					Callee: compile.Lambda{Params: []compile.Param{{Name: "x"}}, Body: compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "x"}, Rhs: compile.Ident{Name: "n"}}},
					Args:   []compile.Expr{compile.IntLit{Value: 5}},
				},
			},
		},
		{
			name: "handle-effect",
			desc: "handle emit(7) with (payload) -> payload + 1",
			top: []compile.Expr{
				compile.HandleEffect{
					Body: compile.EmitEffect{Value: compile.IntLit{Value: 7}},
					Handler: compile.Lambda{
						Params: []compile.Param{{Name: "payload"}},
						Body:   compile.BinOp{Op: rt.OpAdd, Lhs: compile.Ident{Name: "payload"}, Rhs: compile.IntLit{Value: 1}},
					},
				},
			},
		},
		{
			name: "unhandled-effect",
			desc: `emit("boom") reaching the top with no handler`,
			top: []compile.Expr{
				compile.EmitEffect{Value: compile.StringLit{Value: "boom"}},
			},
		},
		{
			name: "prelude-len-and-print",
			desc: `print(len("hello"))`,
			top: []compile.Expr{
				compile.Call{Callee: compile.Ident{Name: "print"}, Args: []compile.Expr{
					compile.Call{Callee: compile.Ident{Name: "len"}, Args: []compile.Expr{compile.StringLit{Value: "hello"}}},
				}},
			},
		},
	}
}
