// Package compile turns a source Expression tree into a typed Statement
// tree (§4.4) that internal/rt.Lower can turn into something the evaluator
// runs. The concrete parser that produces Expression values is outside
// this system's scope (§1) — Expr here is the in-repo stand-in a caller
// builds directly, the same way a parser's AST would.
package compile

import "github.com/latticevm/corevm/internal/rt"

// Expr is the compiler's input node. It carries no position information;
// a real parser's AST would attach one, but nothing downstream needs it.
type Expr interface{ isExpr() }

type IntLit struct{ Value int64 }
type UintLit struct{ Value uint64 }
type FloatLit struct{ Value float64 }
type BoolLit struct{ Value bool }
type StringLit struct{ Value string }
type NoneLit struct{}

// Ident references a previously declared name.
type Ident struct{ Name string }

// Assign binds Name to Value in the current scope, declaring it if it is
// not already visible there, and evaluates to the assigned value.
type Assign struct {
	Name  string
	Value Expr
}

// LazyAssign declares Name without evaluating Value: Value runs at most
// once, on the name's first read, per §4.7's lazy-variable state machine.
type LazyAssign struct {
	Name  string
	Value Expr
}

// Group sequences Body without opening a new lexical scope: `do ... end`
// in the source language leaks its declarations into the enclosing block.
type Group struct{ Body []Expr }

// BinOp and UnOp carry a primitive rt.ArithOp; the compiler resolves the
// concrete numeric instruction once operand types are known.
type BinOp struct {
	Op       rt.ArithOp
	Lhs, Rhs Expr
}

type UnOp struct {
	Op      rt.ArithOp
	Operand Expr
}

type If struct {
	Cond, Then, Else Expr // Else may be nil
}

type While struct{ Cond, Body Expr }
type DoUntil struct{ Cond, Body Expr }

// Param is one declared function parameter; a nil Type defaults to Any.
type Param struct {
	Name string
	Type *rt.Type
}

// FuncDef declares one overload of Name. Overloads sharing a Name compile
// to a single Dispatch call-site wherever Name is invoked (§4.6);
// ReturnType is advisory only — the compiler does not check bodies
// against it.
type FuncDef struct {
	Name       string
	Params     []Param
	Body       Expr
	ReturnType *rt.Type
}

// Call invokes Callee — either a bare Ident naming a compile-time function
// group (compiled to Dispatch) or any other expression yielding a
// Function/NativeFunction value (compiled to a plain FunctionCall).
type Call struct {
	Callee Expr
	Args   []Expr
}

// Lambda is a first-class function literal: unlike FuncDef, it produces a
// Value (via ArmStack) and closes over the scope it is written in.
type Lambda struct {
	Params []Param
	Body   Expr
}

type EmitEffect struct{ Value Expr }
type HandleEffect struct {
	Handler Expr
	Body    Expr
}

func (IntLit) isExpr()       {}
func (UintLit) isExpr()      {}
func (FloatLit) isExpr()     {}
func (BoolLit) isExpr()      {}
func (StringLit) isExpr()    {}
func (NoneLit) isExpr()      {}
func (Ident) isExpr()        {}
func (Assign) isExpr()       {}
func (LazyAssign) isExpr()   {}
func (Group) isExpr()        {}
func (BinOp) isExpr()        {}
func (UnOp) isExpr()         {}
func (If) isExpr()           {}
func (While) isExpr()        {}
func (DoUntil) isExpr()      {}
func (FuncDef) isExpr()      {}
func (Call) isExpr()         {}
func (Lambda) isExpr()       {}
func (EmitEffect) isExpr()   {}
func (HandleEffect) isExpr() {}
