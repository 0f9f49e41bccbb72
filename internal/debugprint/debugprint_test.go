package debugprint

import (
	"strings"
	"testing"

	"github.com/latticevm/corevm/internal/rt"
)

func plainPrinter() *Printer {
	var sb strings.Builder
	return &Printer{Out: &sb, Highlight: false}
}

func TestSprintValue_Primitives(t *testing.T) {
	p := plainPrinter()
	cases := []struct {
		v    rt.Value
		want string
	}{
		{rt.Int(42), "Integer(42)"},
		{rt.Float(3.5), "Float(3.5)"},
		{rt.Bool(true), "Boolean(true)"},
		{rt.NewString("hi"), `String("hi")`},
		{rt.NoneValue, "None"},
	}
	for _, c := range cases {
		if got := p.SprintValue(c.v); got != c.want {
			t.Errorf("SprintValue(%v) = %q, want %q", c.v.Kind(), got, c.want)
		}
	}
}

func TestSprintValue_List(t *testing.T) {
	p := plainPrinter()
	v := rt.NewList([]rt.Value{rt.Int(1), rt.Int(2)})
	got := p.SprintValue(v)
	want := "List[Integer(1), Integer(2)]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSprintValue_CompositeSortsFieldNames(t *testing.T) {
	p := plainPrinter()
	v := rt.NewComposite(map[string]rt.Value{"b": rt.Int(2), "a": rt.Int(1)})
	got := p.SprintValue(v)
	want := "Composite{a: Integer(1), b: Integer(2)}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSprintType_Containers(t *testing.T) {
	p := plainPrinter()
	got := p.SprintType(rt.ListType(rt.IntegerType))
	want := "List<Integer>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSprintType_Function(t *testing.T) {
	p := plainPrinter()
	fn := rt.FunctionType(rt.TupleType([]rt.Type{*rt.IntegerType}, nil), rt.IntegerType)
	got := p.SprintType(fn)
	want := "Function(Tuple(Integer)) -> Integer"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHighlight_WrapsWithAnsiCodes(t *testing.T) {
	var sb strings.Builder
	p := &Printer{Out: &sb, Highlight: true}
	got := p.SprintValue(rt.Int(1))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escape in highlighted output, got %q", got)
	}
	if want := "\x1b[36mInteger\x1b[0m(1)"; got != want {
		t.Errorf("expected only the kind tag highlighted, want %q, got %q", want, got)
	}
}

func TestSprintInstruction_Constant(t *testing.T) {
	p := plainPrinter()
	instr, err := rt.Lower(rt.ConstantStatement(rt.Int(7), rt.IntegerType))
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	got := p.SprintInstruction(instr)
	want := "Constant(Integer(7))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewPrinter_NonFileWriterHasNoHighlight(t *testing.T) {
	var sb strings.Builder
	p := NewPrinter(&sb)
	if p.Highlight {
		t.Error("a non-*os.File writer should never be highlighted")
	}
}
