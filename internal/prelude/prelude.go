// Package prelude supplies the small set of native functions the demo
// binary registers before compiling a program, standing in for the
// primitives registry §1 calls an external collaborator. None of this is
// part of the specified core; it exists only so cmd/corevm has something
// to call besides arithmetic.
package prelude

import (
	"fmt"
	"io"

	"github.com/latticevm/corevm/internal/debugprint"
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

// Types declares the static Function type of every prelude entry, keyed by
// name, for use with compile.CompileProgramWithPrelude.
func Types() map[string]*rt.Type {
	return map[string]*rt.Type{
		"print":  rt.FunctionType(rt.TupleType([]rt.Type{*rt.AnyType}, nil), rt.NoneValueType),
		"len":    rt.FunctionType(rt.TupleType([]rt.Type{*rt.AnyType}, nil), rt.IntegerType),
		"typeOf": rt.FunctionType(rt.TupleType([]rt.Type{*rt.AnyType}, nil), rt.MetaType(rt.AnyType)),
	}
}

// Values builds the NativeFunction Values matching Types(), writing print's
// output to out through a plain (non-highlighted) debugprint.Printer.
func Values(out io.Writer) map[string]rt.Value {
	printer := &debugprint.Printer{Out: out}
	return map[string]rt.Value{
		"print":  rt.NewNativeFunction(printFunc(printer)),
		"len":    rt.NewNativeFunction(lenFunc()),
		"typeOf": rt.NewNativeFunction(typeOfFunc()),
	}
}

func printFunc(p *debugprint.Printer) *rt.NativeFunc {
	return &rt.NativeFunc{
		Name:  "print",
		Arity: 1,
		Call: func(args []rt.Value) (rt.Value, error) {
			if len(args) != 1 {
				return rt.Value{}, &errs.DomainError{Reason: fmt.Sprintf("print expects 1 argument, got %d", len(args))}
			}
			fmt.Fprintln(p.Out, p.SprintValue(args[0]))
			return rt.NoneValue, nil
		},
	}
}

func lenFunc() *rt.NativeFunc {
	return &rt.NativeFunc{
		Name:  "len",
		Arity: 1,
		Call: func(args []rt.Value) (rt.Value, error) {
			if len(args) != 1 {
				return rt.Value{}, &errs.DomainError{Reason: fmt.Sprintf("len expects 1 argument, got %d", len(args))}
			}
			switch args[0].Kind() {
			case rt.KindList:
				return rt.Int(int64(args[0].ListLen())), nil
			case rt.KindArray:
				return rt.Int(int64(args[0].ArrayLen())), nil
			case rt.KindString:
				return rt.Int(int64(len(args[0].AsBytes()))), nil
			default:
				return rt.Value{}, &errs.TypeMismatchError{Expected: "List, Array or String", Actual: args[0].Kind().String()}
			}
		},
	}
}

func typeOfFunc() *rt.NativeFunc {
	return &rt.NativeFunc{
		Name:  "typeOf",
		Arity: 1,
		Call: func(args []rt.Value) (rt.Value, error) {
			if len(args) != 1 {
				return rt.Value{}, &errs.DomainError{Reason: fmt.Sprintf("typeOf expects 1 argument, got %d", len(args))}
			}
			return rt.NewTypeValue(rt.ToType(args[0])), nil
		},
	}
}
