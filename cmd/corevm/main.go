// Command corevm is a small demo binary: it wires the toy compiler
// stand-in, the prelude, and the evaluator together to run the canonical
// end-to-end scenarios in a REPL-ish batch mode. None of this is the
// specified core; it is scaffolding to exercise it end to end.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/latticevm/corevm/internal/compile"
	"github.com/latticevm/corevm/internal/config"
	"github.com/latticevm/corevm/internal/debugprint"
	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/eval"
	"github.com/latticevm/corevm/internal/prelude"
	"github.com/latticevm/corevm/internal/rt"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	args := os.Args[1:]
	noColor := false
	var name string
	for _, a := range args {
		switch a {
		case "-no-color", "--no-color":
			noColor = true
		case "-list", "--list":
			listScenarios()
			return
		default:
			if name == "" {
				name = a
			}
		}
	}
	if name == "" {
		name = "all"
	}

	printer := debugprint.NewPrinter(os.Stdout)
	if noColor {
		printer.Highlight = false
	}

	cfg, err := config.LoadOrDefault(config.DefaultConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading %s: %v\n", config.DefaultConfigFile, err)
		os.Exit(1)
	}
	evaluator := eval.NewWithConfig(cfg)

	failed := false
	for _, sc := range scenarios() {
		if name != "all" && sc.name != name {
			continue
		}
		if !runScenario(evaluator, printer, sc) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func listScenarios() {
	for _, sc := range scenarios() {
		fmt.Printf("%-32s %s\n", sc.name, sc.desc)
	}
}

// runScenario compiles and runs one scenario, printing its outcome and
// reporting whether it completed without an error escaping the top level.
// A compile error or an unhandled Effect is reported, not treated as a
// crash: several scenarios are deliberately built to demonstrate exactly
// that outcome.
func runScenario(evaluator *eval.Evaluator, printer *debugprint.Printer, sc scenario) bool {
	fmt.Printf("=== %s: %s ===\n", sc.name, sc.desc)

	prog, err := compile.CompileProgramWithPrelude(sc.top, prelude.Types())
	if err != nil {
		var ce *errs.CompileError
		if errors.As(err, &ce) {
			fmt.Printf("compile error: %s\n", ce.Reason)
			return true
		}
		fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
		return false
	}

	stack := prog.Context.NewStack(nil)
	for varName, val := range prelude.Values(os.Stdout) {
		if v, ok := prog.Context.TopScope().Lookup(varName); ok {
			stack.Set(v.StackIndex, val)
		}
	}

	result, err := evaluator.Eval(context.Background(), prog.Code, stack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
		return false
	}
	if result.Kind() == rt.KindEffect {
		unhandled := &errs.UnhandledEffect{Payload: printer.SprintValue(result.EffectInner())}
		fmt.Println(unhandled.Error())
		return true
	}
	printer.PrintValue(result)
	return true
}
