package compile

import (
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/frame"
	"github.com/latticevm/corevm/internal/rt"
)

// overload is one compiled FuncDef candidate, ready to feed a
// rt.DispatchCase once every overload sharing its name has been compiled.
type overload struct {
	argTypes  []rt.Type
	body      *rt.Statement
	slotCount int
}

// Compiler walks Expr trees for a single lexical unit (the module, or one
// function/lambda body) and turns them into rt.Statement trees. funcs is
// shared by every Compiler in a program: a name declared by two or more
// FuncDefs lives in this compile-time-only namespace, never as a stack
// variable, since a call to it always compiles straight to Dispatch
// (§4.6). A name declared by a single FuncDef is an ordinary closure
// variable instead (see CompileProgram).
type Compiler struct {
	ctx       *frame.Context
	parent    *Compiler
	defScope  *frame.Scope
	funcs     map[string][]overload
	lazyInits map[*frame.Variable]*rt.Statement
}

// newRootCompiler starts a module-level Compiler with a fresh func table.
func newRootCompiler(ctx *frame.Context) *Compiler {
	return &Compiler{ctx: ctx, funcs: map[string][]overload{}}
}

// newChildCompiler starts a Compiler for a function/lambda body defined at
// defScope; it shares the parent's func table but owns its own Context.
func newChildCompiler(parent *Compiler, ctx *frame.Context, defScope *frame.Scope) *Compiler {
	return &Compiler{ctx: ctx, parent: parent, defScope: defScope, funcs: parent.funcs}
}

// lookupVar searches scope's chain, then — if not found — the enclosing
// Compiler's definition-site scope, and so on outward. It reports which
// Context owns the result so the caller can tell a local slot from one
// reached through an import hop.
func (c *Compiler) lookupVar(scope *frame.Scope, name string) (*frame.Variable, *frame.Context, bool) {
	if v, ok := scope.Lookup(name); ok {
		return v, c.ctx, true
	}
	if c.parent == nil {
		return nil, nil, false
	}
	return c.parent.lookupVar(c.defScope, name)
}

func (c *Compiler) compileAll(scope *frame.Scope, exprs []Expr) ([]*rt.Statement, error) {
	out := make([]*rt.Statement, len(exprs))
	for i, e := range exprs {
		s, err := c.Compile(scope, e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Compile turns e into a typed Statement rooted in scope.
func (c *Compiler) Compile(scope *frame.Scope, e Expr) (*rt.Statement, error) {
	switch n := e.(type) {
	case IntLit:
		return rt.ConstantStatement(rt.Int(n.Value), rt.IntegerType), nil
	case UintLit:
		return rt.ConstantStatement(rt.Uint(n.Value), rt.UnsignedType), nil
	case FloatLit:
		return rt.ConstantStatement(rt.Float(n.Value), rt.FloatType), nil
	case BoolLit:
		return rt.ConstantStatement(rt.Bool(n.Value), rt.BooleanType), nil
	case StringLit:
		return rt.ConstantStatement(rt.NewString(n.Value), rt.StringType), nil
	case NoneLit:
		return rt.ConstantStatement(rt.NoneValue, rt.NoneValueType), nil

	case Ident:
		return c.compileIdent(scope, n)
	case Assign:
		return c.compileAssign(scope, n)
	case LazyAssign:
		return c.compileLazyAssign(scope, n)
	case Group:
		children, err := c.compileAll(scope, n.Body)
		if err != nil {
			return nil, err
		}
		return rt.SequenceStatement(children, resultType(children)), nil

	case BinOp:
		return c.compileBinOp(scope, n)
	case UnOp:
		return c.compileUnOp(scope, n)

	case If:
		return c.compileIf(scope, n)
	case While:
		return c.compileLoop(scope, n.Cond, n.Body, false)
	case DoUntil:
		return c.compileLoop(scope, n.Cond, n.Body, true)

	case FuncDef:
		return nil, &errs.CompileError{Reason: "FuncDef must be registered via CompileProgram, not compiled inline"}
	case Call:
		return c.compileCall(scope, n)
	case Lambda:
		return c.compileLambda(scope, n)

	case EmitEffect:
		v, err := c.Compile(scope, n.Value)
		if err != nil {
			return nil, err
		}
		return rt.EmitEffectStatement(v, rt.AnyType), nil
	case HandleEffect:
		handler, err := c.Compile(scope, n.Handler)
		if err != nil {
			return nil, err
		}
		body, err := c.Compile(scope, n.Body)
		if err != nil {
			return nil, err
		}
		return rt.HandleEffectStatement(handler, body, rt.AnyType), nil

	default:
		return nil, &errs.CompileError{Reason: "compile: unrecognized expression node"}
	}
}

func resultType(children []*rt.Statement) *rt.Type {
	if len(children) == 0 {
		return rt.NoneValueType
	}
	return children[len(children)-1].Type()
}

func (c *Compiler) compileIdent(scope *frame.Scope, n Ident) (*rt.Statement, error) {
	v, declCtx, ok := c.lookupVar(scope, n.Name)
	if !ok {
		return nil, &errs.CompileError{Reason: "undeclared identifier " + n.Name}
	}
	if declCtx == c.ctx {
		if init, ok := c.lazyInits[v]; ok {
			return rt.VariableGetLazyStatement(v.StackIndex, init, v.CachedType), nil
		}
		return rt.VariableGetStatement(v.StackIndex, v.CachedType), nil
	}
	addr, ok := c.ctx.AddressFor(v)
	if !ok {
		return nil, &errs.CompileError{Reason: "identifier " + n.Name + " is not reachable from this scope"}
	}
	return addressToGet(addr, v.CachedType), nil
}

func addressToGet(addr rt.VariableAddress, t *rt.Type) *rt.Statement {
	stmt := rt.VariableGetStatement(addr.Slot(), t)
	imports := addr.Imports()
	for i := len(imports) - 1; i >= 0; i-- {
		stmt = rt.FromImportedStackStatement(imports[i], stmt, t)
	}
	return stmt
}

func (c *Compiler) compileAssign(scope *frame.Scope, n Assign) (*rt.Statement, error) {
	val, err := c.Compile(scope, n.Value)
	if err != nil {
		return nil, err
	}
	if v, ok := scope.Lookup(n.Name); ok {
		return rt.VariableSetStatement(v.StackIndex, val, val.Type()), nil
	}
	v := scope.Declare(n.Name, val.Type())
	return rt.VariableSetStatement(v.StackIndex, val, val.Type()), nil
}

// compileLazyAssign declares n.Name without emitting any code to run
// immediately: the value expression is compiled now (against the current
// scope, so it can still see everything a normal assignment could) but
// only wired up as the slot's deferred initializer, run at most once by
// the first VariableGetLazyStatement that reads it.
func (c *Compiler) compileLazyAssign(scope *frame.Scope, n LazyAssign) (*rt.Statement, error) {
	val, err := c.Compile(scope, n.Value)
	if err != nil {
		return nil, err
	}
	v := scope.Declare(n.Name, val.Type())
	if c.lazyInits == nil {
		c.lazyInits = map[*frame.Variable]*rt.Statement{}
	}
	c.lazyInits[v] = val
	return rt.NoneStatement(rt.NoneValueType), nil
}

func (c *Compiler) compileIf(scope *frame.Scope, n If) (*rt.Statement, error) {
	cond, err := c.Compile(scope, n.Cond)
	if err != nil {
		return nil, err
	}
	if !isBoolean(cond.Type()) {
		return nil, &errs.CompileError{Reason: "if condition must be Boolean"}
	}
	then, err := c.Compile(scope, n.Then)
	if err != nil {
		return nil, err
	}
	var els *rt.Statement
	resultT := then.Type()
	if n.Else != nil {
		els, err = c.Compile(scope, n.Else)
		if err != nil {
			return nil, err
		}
		if !rt.TypeEqual(then.Type(), els.Type()) {
			resultT = rt.UnionOf(*then.Type(), *els.Type())
		}
	} else {
		resultT = rt.UnionOf(*then.Type(), *rt.NoneValueType)
	}
	return rt.IfStatement(cond, then, els, resultT), nil
}

func (c *Compiler) compileLoop(scope *frame.Scope, condExpr, bodyExpr Expr, doUntil bool) (*rt.Statement, error) {
	cond, err := c.Compile(scope, condExpr)
	if err != nil {
		return nil, err
	}
	if !isBoolean(cond.Type()) {
		return nil, &errs.CompileError{Reason: "loop condition must be Boolean"}
	}
	body, err := c.Compile(scope, bodyExpr)
	if err != nil {
		return nil, err
	}
	if doUntil {
		return rt.DoUntilStatement(cond, body, rt.NoneValueType), nil
	}
	return rt.WhileStatement(cond, body, rt.NoneValueType), nil
}

func isBoolean(t *rt.Type) bool { return t != nil && t.Kind() == rt.TypeBoolean }

// compileLambda produces a Function value: an unarmed template sized to
// the lambda's own Context, wrapped in ArmStack so evaluating it captures
// the enclosing stack for closure access (§4.5, §9 "Persistent closures").
func (c *Compiler) compileLambda(scope *frame.Scope, n Lambda) (*rt.Statement, error) {
	bodyCtx := frame.NewContext([]*frame.Context{c.ctx})
	bodyScope := bodyCtx.TopScope()
	argTypes := make([]rt.Type, len(n.Params))
	for i, p := range n.Params {
		t := p.Type
		if t == nil {
			t = rt.AnyType
		}
		bodyScope.Declare(p.Name, t)
		argTypes[i] = *t
	}
	child := newChildCompiler(c, bodyCtx, scope)
	bodyStmt, err := child.Compile(bodyScope, n.Body)
	if err != nil {
		return nil, err
	}
	bodyInstr, err := rt.Lower(bodyStmt)
	if err != nil {
		return nil, err
	}
	fnType := rt.FunctionType(rt.TupleType(argTypes, nil), bodyStmt.Type())
	tmplFn := &rt.Function{
		PersistentStack: rt.NewStack(nil, len(bodyCtx.Variables())),
		Instruction:     bodyInstr,
	}
	constStmt := rt.ConstantStatement(rt.NewFunction(tmplFn), fnType)
	return rt.ArmStackStatement(constStmt, fnType), nil
}

func (c *Compiler) compileCall(scope *frame.Scope, n Call) (*rt.Statement, error) {
	if callee, ok := n.Callee.(Ident); ok {
		if group, ok := c.funcs[callee.Name]; ok {
			return c.compileDispatchCall(scope, group, n.Args, callee.Name)
		}
	}
	calleeStmt, err := c.Compile(scope, n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := c.compileAll(scope, n.Args)
	if err != nil {
		return nil, err
	}
	retType := rt.AnyType
	if calleeStmt.Type() != nil && calleeStmt.Type().Kind() == rt.TypeFunction && calleeStmt.Type().Return() != nil {
		retType = calleeStmt.Type().Return()
	}
	return rt.FunctionCallStatement(calleeStmt, args, retType), nil
}

func (c *Compiler) compileDispatchCall(scope *frame.Scope, group []overload, argExprs []Expr, name string) (*rt.Statement, error) {
	args, err := c.compileAll(scope, argExprs)
	if err != nil {
		return nil, err
	}
	if len(group) == 0 {
		return nil, &errs.CompileError{Reason: "no overloads registered for " + name}
	}
	cases := make([]rt.DispatchCase, len(group))
	var resultT *rt.Type
	for i, o := range group {
		cases[i] = rt.DispatchCase{ArgTypes: o.argTypes, Body: o.body, SlotCount: o.slotCount}
		if resultT == nil {
			resultT = o.body.Type()
		} else {
			resultT = rt.UnionOf(*resultT, *o.body.Type())
		}
	}
	return rt.DispatchStatement(cases, args, resultT), nil
}
