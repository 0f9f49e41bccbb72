// Package eval implements the single-threaded, tree-walking Evaluator
// that runs a lowered Instruction tree against a Stack (§4.5).
package eval

import (
	"context"

	"github.com/latticevm/corevm/internal/config"
	"github.com/latticevm/corevm/internal/dispatch"
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

// Evaluator carries no per-activation state of its own: every activation is
// carried in the Stack passed to Eval, so one Evaluator value can be reused
// (or shared read-only) across concurrent top-level evaluations as long as
// each owns a disjoint Stack (§5). The only field it does carry,
// suspensionInterval, is a fixed config knob, not activation state.
type Evaluator struct {
	// suspensionInterval is how many InstrWhile/InstrDoUntil iterations run
	// between checkCancel calls. 1 means every iteration.
	suspensionInterval int
}

// New returns a ready-to-use Evaluator that checks for cancellation on
// every loop iteration.
func New() *Evaluator { return &Evaluator{suspensionInterval: 1} }

// NewWithConfig returns an Evaluator whose loop cancellation checks run
// every cfg.SuspensionInterval iterations instead of every one, trading
// cancellation latency for fewer ctx.Err() calls in hot loops.
func NewWithConfig(cfg config.RuntimeConfig) *Evaluator {
	n := cfg.SuspensionInterval
	if n <= 0 {
		n = 1
	}
	return &Evaluator{suspensionInterval: n}
}

// interval returns the configured suspension interval, defending against a
// zero-value Evaluator (as opposed to one built via New/NewWithConfig).
func (e *Evaluator) interval() int {
	if e.suspensionInterval <= 0 {
		return 1
	}
	return e.suspensionInterval
}

// Eval runs instr against stack. It returns either a plain Value, an
// unhandled Effect Value (Kind() == rt.KindEffect) that reached the top
// with no enclosing HandleEffect, or an error for a domain/dispatch
// failure. ctx is consulted at the suspension points named in §5: loop
// heads and before invoking a callable.
func (e *Evaluator) Eval(ctx context.Context, instr *rt.Instruction, stack *rt.Stack) (rt.Value, error) {
	switch instr.Kind() {
	case rt.InstrNoOp:
		return rt.NoneValue, nil
	case rt.InstrConstant:
		return instr.Constant(), nil

	case rt.InstrFunctionCall:
		return e.evalFunctionCall(ctx, instr, stack)
	case rt.InstrDispatch:
		return e.evalDispatch(ctx, instr, stack)

	case rt.InstrSequence:
		result := rt.NoneValue
		for _, c := range instr.Children() {
			v, err := e.Eval(ctx, c, stack)
			if err != nil || isEffect(v) {
				return v, err
			}
			result = v
		}
		return result, nil

	case rt.InstrVariableGet:
		return stack.Get(instr.Slot()), nil

	case rt.InstrVariableGetLazy:
		return e.evalLazyGet(ctx, instr, stack)

	case rt.InstrVariableSet:
		v, err := e.Eval(ctx, instr.Value(), stack)
		if err != nil || isEffect(v) {
			return v, err
		}
		stack.Set(instr.Slot(), v)
		return v, nil

	case rt.InstrFromImportedStack:
		return e.Eval(ctx, instr.Sub(), stack.Import(instr.ImportIndex()))

	case rt.InstrSetAddress:
		v, err := e.Eval(ctx, instr.Value(), stack)
		if err != nil || isEffect(v) {
			return v, err
		}
		target := stack
		addr := instr.Address()
		for _, i := range addr.Imports() {
			target = target.Import(i)
		}
		target.Set(addr.Slot(), v)
		return v, nil

	case rt.InstrArmStack:
		fnVal, err := e.Eval(ctx, instr.Fn(), stack)
		if err != nil || isEffect(fnVal) {
			return fnVal, err
		}
		if fnVal.Kind() != rt.KindFunction {
			return rt.Value{}, &errs.TypeMismatchError{Expected: "Function", Actual: fnVal.Kind().String()}
		}
		tmpl := fnVal.AsFunction()
		armed := &rt.Function{
			PersistentStack: rt.NewStack([]*rt.Stack{stack}, tmpl.PersistentStack.Len()),
			Instruction:     tmpl.Instruction,
		}
		return rt.NewFunction(armed), nil

	case rt.InstrIf:
		cond, err := e.Eval(ctx, instr.Cond(), stack)
		if err != nil || isEffect(cond) {
			return cond, err
		}
		if cond.Kind() != rt.KindBoolean {
			return rt.Value{}, &errs.TypeMismatchError{Expected: "Boolean", Actual: cond.Kind().String()}
		}
		if cond.AsBool() {
			return e.Eval(ctx, instr.Then(), stack)
		}
		if instr.Else() == nil {
			return rt.NoneValue, nil
		}
		return e.Eval(ctx, instr.Else(), stack)

	case rt.InstrWhile:
		for iter := 0; ; iter++ {
			if iter%e.interval() == 0 {
				if v, cancelled := checkCancel(ctx); cancelled {
					return v, nil
				}
			}
			cond, err := e.Eval(ctx, instr.Cond(), stack)
			if err != nil || isEffect(cond) {
				return cond, err
			}
			if cond.Kind() != rt.KindBoolean {
				return rt.Value{}, &errs.TypeMismatchError{Expected: "Boolean", Actual: cond.Kind().String()}
			}
			if !cond.AsBool() {
				return rt.NoneValue, nil
			}
			if v, err := e.Eval(ctx, instr.Body(), stack); err != nil || isEffect(v) {
				return v, err
			}
		}

	case rt.InstrDoUntil:
		for iter := 0; ; iter++ {
			if iter%e.interval() == 0 {
				if v, cancelled := checkCancel(ctx); cancelled {
					return v, nil
				}
			}
			if v, err := e.Eval(ctx, instr.Body(), stack); err != nil || isEffect(v) {
				return v, err
			}
			cond, err := e.Eval(ctx, instr.Cond(), stack)
			if err != nil || isEffect(cond) {
				return cond, err
			}
			if cond.Kind() != rt.KindBoolean {
				return rt.Value{}, &errs.TypeMismatchError{Expected: "Boolean", Actual: cond.Kind().String()}
			}
			if cond.AsBool() {
				return rt.NoneValue, nil
			}
		}

	case rt.InstrEmitEffect:
		v, err := e.Eval(ctx, instr.Value(), stack)
		if err != nil || isEffect(v) {
			return v, err
		}
		return rt.NewEffect(v), nil

	case rt.InstrHandleEffect:
		body, err := e.Eval(ctx, instr.Body(), stack)
		if err != nil {
			return rt.Value{}, err
		}
		if !isEffect(body) {
			return body, nil
		}
		handler, err := e.Eval(ctx, instr.Handler(), stack)
		if err != nil || isEffect(handler) {
			return handler, err
		}
		return e.applyCallable(ctx, handler, []rt.Value{body.EffectInner()}, stack)

	case rt.InstrBuildTuple:
		items, v, err := e.evalAll(ctx, instr.Children(), stack)
		if err != nil || v != nil {
			return orEffect(v), err
		}
		return rt.NewArray(items), nil
	case rt.InstrBuildList:
		items, v, err := e.evalAll(ctx, instr.Children(), stack)
		if err != nil || v != nil {
			return orEffect(v), err
		}
		return rt.NewList(items), nil
	case rt.InstrBuildSet:
		items, v, err := e.evalAll(ctx, instr.Children(), stack)
		if err != nil || v != nil {
			return orEffect(v), err
		}
		result := rt.NewSet()
		for _, item := range items {
			rt.SetAdd(result, item)
		}
		return result, nil
	case rt.InstrBuildTable:
		result := rt.NewTable()
		for _, pair := range instr.Pairs() {
			k, err := e.Eval(ctx, pair.Key, stack)
			if err != nil || isEffect(k) {
				return k, err
			}
			val, err := e.Eval(ctx, pair.Value, stack)
			if err != nil || isEffect(val) {
				return val, err
			}
			rt.TableSet(result, k, val)
		}
		return result, nil
	case rt.InstrBuildComposite:
		items, v, err := e.evalAll(ctx, instr.Children(), stack)
		if err != nil || v != nil {
			return orEffect(v), err
		}
		fields := make(map[string]rt.Value, len(items))
		for i, name := range instr.FieldNames() {
			fields[name] = items[i]
		}
		return rt.NewComposite(fields), nil

	case rt.InstrNegInt, rt.InstrNegUint, rt.InstrNegFloat, rt.InstrLogicalNot, rt.InstrToFloat:
		operand, err := e.Eval(ctx, instr.Operand(), stack)
		if err != nil || isEffect(operand) {
			return operand, err
		}
		return evalUnary(instr.Kind(), operand)

	default:
		lhs, err := e.Eval(ctx, instr.Lhs(), stack)
		if err != nil || isEffect(lhs) {
			return lhs, err
		}
		rhs, err := e.Eval(ctx, instr.Rhs(), stack)
		if err != nil || isEffect(rhs) {
			return rhs, err
		}
		return evalBinary(instr.Kind(), lhs, rhs)
	}
}

func (e *Evaluator) evalAll(ctx context.Context, instrs []*rt.Instruction, stack *rt.Stack) ([]rt.Value, *rt.Value, error) {
	out := make([]rt.Value, len(instrs))
	for i, c := range instrs {
		v, err := e.Eval(ctx, c, stack)
		if err != nil {
			return nil, nil, err
		}
		if isEffect(v) {
			return nil, &v, nil
		}
		out[i] = v
	}
	return out, nil, nil
}

func orEffect(v *rt.Value) rt.Value {
	if v == nil {
		return rt.Value{}
	}
	return *v
}

func (e *Evaluator) evalFunctionCall(ctx context.Context, instr *rt.Instruction, stack *rt.Stack) (rt.Value, error) {
	callee, err := e.Eval(ctx, instr.Callee(), stack)
	if err != nil || isEffect(callee) {
		return callee, err
	}
	args, effect, err := e.evalAll(ctx, instr.Args(), stack)
	if err != nil || effect != nil {
		return orEffect(effect), err
	}
	if v, cancelled := checkCancel(ctx); cancelled {
		return v, nil
	}
	return e.applyCallable(ctx, callee, args, stack)
}

// applyCallable implements the shared FunctionCall/HandleEffect-handler
// calling convention: a Function gets a shallow-refreshed copy of its
// persistent stack with args written to its first slots and its
// instruction run against that copy; a NativeFunction just runs.
func (e *Evaluator) applyCallable(ctx context.Context, callee rt.Value, args []rt.Value, stack *rt.Stack) (rt.Value, error) {
	switch callee.Kind() {
	case rt.KindFunction:
		fn := callee.AsFunction()
		frame := fn.PersistentStack.ShallowRefresh()
		for i, a := range args {
			frame.Set(i, a)
		}
		return e.Eval(ctx, fn.Instruction, frame)
	case rt.KindNativeFunction:
		return callee.NativeFunction().Call(args)
	default:
		return rt.Value{}, &errs.TypeMismatchError{Expected: "Function", Actual: callee.Kind().String()}
	}
}

func (e *Evaluator) evalDispatch(ctx context.Context, instr *rt.Instruction, stack *rt.Stack) (rt.Value, error) {
	args, effect, err := e.evalAll(ctx, instr.Args(), stack)
	if err != nil || effect != nil {
		return orEffect(effect), err
	}
	argTypes := make([]rt.Type, len(args))
	for i, a := range args {
		argTypes[i] = *rt.ToType(a)
	}
	targets := instr.Dispatchees()
	candidates := make([]dispatch.Candidate, len(targets))
	for i, t := range targets {
		candidates[i] = dispatch.Candidate{ArgTypes: t.ArgTypes}
	}
	winner, err := dispatch.Select(candidates, argTypes, "")
	if err != nil {
		return rt.Value{}, err
	}
	if v, cancelled := checkCancel(ctx); cancelled {
		return v, nil
	}
	// Dispatch candidates are self-contained: they see only their own
	// parameters, never the call site's enclosing scope (§4.6). A closure
	// that needs lexical capture is compiled as an ArmStack'd Function
	// instead, never as a Dispatch candidate.
	frame := rt.NewStack(nil, targets[winner].Template.Len())
	for i, a := range args {
		frame.Set(i, a)
	}
	return e.Eval(ctx, targets[winner].Body, frame)
}

// evalLazyGet implements the NotEvaluated -> Evaluating -> Evaluated state
// machine for a lazy module slot (§4.7). The state lives on the Stack
// (Stack.LazyState) because a lowered Instruction carries only a bare slot
// index, not a compile-time binding.
func (e *Evaluator) evalLazyGet(ctx context.Context, instr *rt.Instruction, stack *rt.Stack) (rt.Value, error) {
	slot := instr.Slot()
	switch stack.LazyState(slot) {
	case rt.LazyEvaluated:
		return stack.Get(slot), nil
	case rt.LazyEvaluating:
		return rt.Value{}, &errs.DomainError{Reason: "cycle detected evaluating lazy variable"}
	}
	stack.SetLazyState(slot, rt.LazyEvaluating)
	val, err := e.Eval(ctx, instr.Value(), stack)
	if err != nil {
		stack.SetLazyState(slot, rt.LazyNotEvaluated)
		return rt.Value{}, err
	}
	if isEffect(val) {
		stack.SetLazyState(slot, rt.LazyNotEvaluated)
		return val, nil
	}
	stack.Set(slot, val)
	stack.SetLazyState(slot, rt.LazyEvaluated)
	return val, nil
}

func isEffect(v rt.Value) bool { return v.Kind() == rt.KindEffect }

// checkCancel consults the ambient cancellation flag at a suspension
// point (§5). On cancellation it returns an unhandled Effect carrying the
// context's error as its payload string, rather than a Go error: the
// source model treats cancellation as something a HandleEffect upstream
// may choose to catch, not as a hard failure.
func checkCancel(ctx context.Context) (rt.Value, bool) {
	select {
	case <-ctx.Done():
		return rt.NewEffect(rt.NewString("cancelled: " + ctx.Err().Error())), true
	default:
		return rt.Value{}, false
	}
}
