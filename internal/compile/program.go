package compile

import (
	"github.com/latticevm/corevm/internal/frame"
	"github.com/latticevm/corevm/internal/rt"
)

// Program is a fully compiled top-level unit: the module Context (for
// inspecting declared variables in tests or a debug printer) and the
// lowered Instruction ready for Evaluator.Eval.
type Program struct {
	Context *frame.Context
	Code    *rt.Instruction
}

// CompileProgram compiles a sequence of top-level statements into a
// Program.
//
// A name declared by exactly one FuncDef compiles to an ordinary
// module-level closure: the name is declared as a ArmStack'd Function
// variable before its own body is compiled, so a self-recursive call
// resolves like any other identifier one import hop away (§9,
// "Persistent closures"). A name declared by two or more FuncDefs never
// gets a variable at all — every call to it compiles straight to a
// Dispatch carrying the full candidate set (§4.6). Each group is
// registered only after its own bodies compile, in declaration order, so
// a body can call a multi-overload group declared before it, but not its
// own group or one declared after it (such a call fails with an
// undeclared-identifier CompileError).
func CompileProgram(top []Expr) (*Program, error) {
	return compileProgram(top, nil)
}

// CompileProgramWithPrelude is CompileProgram, but first declares each
// name in prelude as an ordinary (non-lazy) module-level variable of the
// given type before compiling top. The caller is responsible for setting
// each declared slot's value on the Program's initial Stack (via
// Context.TopScope().Lookup and Variable.StackIndex) before evaluating
// Program.Code — CompileProgram has no way to run native Go code itself,
// so it only reserves the slots and lets top reference them by name.
func CompileProgramWithPrelude(top []Expr, prelude map[string]*rt.Type) (*Program, error) {
	return compileProgram(top, prelude)
}

func compileProgram(top []Expr, prelude map[string]*rt.Type) (*Program, error) {
	ctx := frame.NewContext(nil)
	root := newRootCompiler(ctx)
	scope := ctx.TopScope()

	for name, t := range prelude {
		scope.Declare(name, t)
	}

	byName := map[string][]FuncDef{}
	var order []string
	for _, e := range top {
		def, ok := e.(FuncDef)
		if !ok {
			continue
		}
		if _, seen := byName[def.Name]; !seen {
			order = append(order, def.Name)
		}
		byName[def.Name] = append(byName[def.Name], def)
	}

	closureVars := map[string]*frame.Variable{}
	for _, name := range order {
		if len(byName[name]) > 1 {
			continue // multi-overload: resolved lazily per call site below
		}
		closureVars[name] = declareClosureSlot(scope, byName[name][0])
	}

	defStmts := map[string]*rt.Statement{}
	for _, name := range order {
		defs := byName[name]
		if len(defs) > 1 {
			group := make([]overload, len(defs))
			for i, def := range defs {
				o, err := root.compileOverload(scope, def)
				if err != nil {
					return nil, err
				}
				group[i] = o
			}
			root.funcs[name] = group
			continue
		}
		v := closureVars[name]
		stmt, err := root.compileClosureDef(scope, v, defs[0])
		if err != nil {
			return nil, err
		}
		defStmts[name] = stmt
	}

	stmts := make([]*rt.Statement, 0, len(top))
	for _, e := range top {
		if def, isFunc := e.(FuncDef); isFunc {
			if s, ok := defStmts[def.Name]; ok {
				stmts = append(stmts, s)
				delete(defStmts, def.Name) // emit a single-overload's definition once
			}
			continue
		}
		s, err := root.Compile(scope, e)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}

	seq := rt.SequenceStatement(stmts, resultType(stmts))
	instr, err := rt.Lower(seq)
	if err != nil {
		return nil, err
	}
	return &Program{Context: ctx, Code: instr}, nil
}

func funcType(def FuncDef) *rt.Type {
	argTypes := make([]rt.Type, len(def.Params))
	for i, p := range def.Params {
		if p.Type != nil {
			argTypes[i] = *p.Type
		} else {
			argTypes[i] = *rt.AnyType
		}
	}
	ret := rt.AnyType
	if def.ReturnType != nil {
		ret = def.ReturnType
	}
	return rt.FunctionType(rt.TupleType(argTypes, nil), ret)
}

func declareClosureSlot(scope *frame.Scope, def FuncDef) *frame.Variable {
	return scope.Declare(def.Name, funcType(def))
}

// compileClosureDef compiles def's body against its own private Context
// (importing the module context at index 0, for the self-reference v
// resolves through) and returns the top-level statement that arms and
// stores the closure into v's slot.
func (c *Compiler) compileClosureDef(defScope *frame.Scope, v *frame.Variable, def FuncDef) (*rt.Statement, error) {
	bodyCtx := frame.NewContext([]*frame.Context{c.ctx})
	bodyScope := bodyCtx.TopScope()
	for _, p := range def.Params {
		t := p.Type
		if t == nil {
			t = rt.AnyType
		}
		bodyScope.Declare(p.Name, t)
	}
	child := newChildCompiler(c, bodyCtx, defScope)
	body, err := child.Compile(bodyScope, def.Body)
	if err != nil {
		return nil, err
	}
	bodyInstr, err := rt.Lower(body)
	if err != nil {
		return nil, err
	}
	fnType := funcType(def)
	tmplFn := &rt.Function{
		PersistentStack: rt.NewStack(nil, len(bodyCtx.Variables())),
		Instruction:     bodyInstr,
	}
	constStmt := rt.ConstantStatement(rt.NewFunction(tmplFn), fnType)
	armed := rt.ArmStackStatement(constStmt, fnType)
	return rt.VariableSetStatement(v.StackIndex, armed, fnType), nil
}

func (c *Compiler) compileOverload(defScope *frame.Scope, def FuncDef) (overload, error) {
	bodyCtx := frame.NewContext(nil) // self-contained: no lexical import (§4.6)
	bodyScope := bodyCtx.TopScope()
	argTypes := make([]rt.Type, len(def.Params))
	for i, p := range def.Params {
		t := p.Type
		if t == nil {
			t = rt.AnyType
		}
		bodyScope.Declare(p.Name, t)
		argTypes[i] = *t
	}
	child := newChildCompiler(c, bodyCtx, defScope)
	body, err := child.Compile(bodyScope, def.Body)
	if err != nil {
		return overload{}, err
	}
	return overload{argTypes: argTypes, body: body, slotCount: len(bodyCtx.Variables())}, nil
}
