// Package debugprint implements the `$`-printer: a best-effort, TTY-aware
// renderer for Value/Type/Instruction used only in diagnostics and error
// messages, never on a hot evaluation path. It mirrors the teacher's
// terminal-detection convention in internal/evaluator/builtins_term.go,
// scaled down to a single color check instead of a full color-level probe.
package debugprint

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/latticevm/corevm/internal/rt"
)

// Printer renders Value/Type/Instruction for diagnostics. Highlight decides
// whether ANSI color codes are emitted; NewPrinter derives it from the
// destination writer, but it can be overridden directly (tests, --no-color).
type Printer struct {
	Out       io.Writer
	Highlight bool
}

// NewPrinter builds a Printer targeting out, auto-detecting color support
// the way the teacher's terminal builtins do: only when out is an *os.File
// attached to a real terminal.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out, Highlight: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) color(code, s string) string {
	if !p.Highlight {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// PrintValue writes v's rendering to p.Out followed by a newline.
func (p *Printer) PrintValue(v rt.Value) {
	fmt.Fprintln(p.Out, p.SprintValue(v))
}

// SprintValue renders v as a diagnostic string, highlighting the kind tag
// when p.Highlight is set. Recurses into container payloads; recursion
// depth is bounded only by the value graph itself, which the evaluator
// never lets become cyclic through user-visible operations.
func (p *Printer) SprintValue(v rt.Value) string {
	kind := p.color("36", v.Kind().String())
	switch v.Kind() {
	case rt.KindNone:
		return kind
	case rt.KindInteger:
		return fmt.Sprintf("%s(%d)", kind, v.AsInt())
	case rt.KindUnsigned:
		return fmt.Sprintf("%s(%d)", kind, v.AsUint())
	case rt.KindFloat:
		return fmt.Sprintf("%s(%g)", kind, v.AsFloat())
	case rt.KindBoolean:
		return fmt.Sprintf("%s(%t)", kind, v.AsBool())
	case rt.KindString:
		return fmt.Sprintf("%s(%q)", kind, v.AsString())
	case rt.KindList:
		items := v.ListItems()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = p.SprintValue(it)
		}
		return fmt.Sprintf("%s[%s]", kind, strings.Join(parts, ", "))
	case rt.KindArray:
		items := v.ArrayItems()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = p.SprintValue(it)
		}
		return fmt.Sprintf("%s[%s]", kind, strings.Join(parts, ", "))
	case rt.KindReference:
		return fmt.Sprintf("%s(%s)", kind, p.SprintValue(v.RefGet()))
	case rt.KindComposite:
		fields := v.CompositeFields()
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s: %s", name, p.SprintValue(fields[name]))
		}
		return fmt.Sprintf("%s{%s}", kind, strings.Join(parts, ", "))
	case rt.KindType:
		return fmt.Sprintf("%s(%s)", kind, p.SprintType(v.TypeValue()))
	case rt.KindFunction:
		return fmt.Sprintf("%s(slots=%d)", kind, v.AsFunction().PersistentStack.Len())
	case rt.KindNativeFunction:
		nf := v.NativeFunction()
		return fmt.Sprintf("%s(%s/%d)", kind, nf.Name, nf.Arity)
	case rt.KindEffect:
		return fmt.Sprintf("%s(%s)", kind, p.SprintValue(v.EffectInner()))
	default:
		return kind
	}
}

// SprintType renders t as a diagnostic string.
func (p *Printer) SprintType(t *rt.Type) string {
	if t == nil {
		return p.color("35", "<nil>")
	}
	kind := p.color("35", t.Kind().String())
	switch t.Kind() {
	case rt.TypeList, rt.TypeSet, rt.TypeReference:
		return fmt.Sprintf("%s<%s>", kind, p.SprintType(t.Inner()))
	case rt.TypeTable:
		return fmt.Sprintf("%s<%s, %s>", kind, p.SprintType(t.Key()), p.SprintType(t.Value()))
	case rt.TypeFunction:
		return fmt.Sprintf("%s(%s) -> %s", kind, p.SprintType(t.Arguments()), p.SprintType(t.Return()))
	case rt.TypeTuple:
		elems := t.Elements()
		parts := make([]string, len(elems))
		for i := range elems {
			parts[i] = p.SprintType(&elems[i])
		}
		if t.Varargs() != nil {
			parts = append(parts, p.SprintType(t.Varargs())+"...")
		}
		return fmt.Sprintf("%s(%s)", kind, strings.Join(parts, ", "))
	case rt.TypeUnion, rt.TypeIntersection:
		operands := t.Operands()
		parts := make([]string, len(operands))
		for i := range operands {
			parts[i] = p.SprintType(&operands[i])
		}
		return fmt.Sprintf("%s(%s)", kind, strings.Join(parts, ", "))
	case rt.TypeNot:
		return fmt.Sprintf("%s(%s)", kind, p.SprintType(t.Inner()))
	case rt.TypeBaseType:
		return fmt.Sprintf("%s(%s)", kind, t.BaseKind())
	case rt.TypeWithProperty:
		return fmt.Sprintf("%s(%s)", kind, p.SprintType(t.Inner()))
	case rt.TypeType:
		return fmt.Sprintf("%s(%s)", kind, p.SprintType(t.Inner()))
	default:
		return kind
	}
}

// SprintInstruction renders instr's top-level kind and, for the shapes a
// diagnostic most often needs, one layer of its immediate operands. It is
// intentionally shallow: full-tree dumps belong to a proper AST printer,
// not the error-path `$`-printer.
func (p *Printer) SprintInstruction(instr *rt.Instruction) string {
	if instr == nil {
		return p.color("33", "<nil>")
	}
	kind := p.color("33", instr.Kind().String())
	switch instr.Kind() {
	case rt.InstrConstant:
		return fmt.Sprintf("%s(%s)", kind, p.SprintValue(instr.Constant()))
	case rt.InstrVariableGet, rt.InstrVariableGetLazy, rt.InstrVariableSet:
		return fmt.Sprintf("%s(slot=%d)", kind, instr.Slot())
	case rt.InstrIf:
		return fmt.Sprintf("%s(cond=%s)", kind, p.SprintInstruction(instr.Cond()))
	case rt.InstrFunctionCall:
		return fmt.Sprintf("%s(callee=%s, args=%d)", kind, p.SprintInstruction(instr.Callee()), len(instr.Args()))
	default:
		return kind
	}
}
