package prelude

import (
	"errors"
	"strings"
	"testing"

	"github.com/latticevm/corevm/internal/errs"
	"github.com/latticevm/corevm/internal/rt"
)

func TestPrint_WritesRendering(t *testing.T) {
	var sb strings.Builder
	values := Values(&sb)
	printFn := values["print"].NativeFunction()
	_, err := printFn.Call([]rt.Value{rt.Int(9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sb.String(); got != "Integer(9)\n" {
		t.Errorf("got %q, want %q", got, "Integer(9)\n")
	}
}

func TestLen_List(t *testing.T) {
	values := Values(&strings.Builder{})
	lenFn := values["len"].NativeFunction()
	v, err := lenFn.Call([]rt.Value{rt.NewList([]rt.Value{rt.Int(1), rt.Int(2), rt.Int(3)})})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsInt() != 3 {
		t.Errorf("got %d, want 3", v.AsInt())
	}
}

func TestLen_WrongKind(t *testing.T) {
	values := Values(&strings.Builder{})
	lenFn := values["len"].NativeFunction()
	_, err := lenFn.Call([]rt.Value{rt.Int(1)})
	var tm *errs.TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("expected *errs.TypeMismatchError, got %T: %v", err, err)
	}
}

func TestTypeOf_ReturnsMatchingType(t *testing.T) {
	values := Values(&strings.Builder{})
	typeOfFn := values["typeOf"].NativeFunction()
	v, err := typeOfFn.Call([]rt.Value{rt.NewString("hi")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != rt.KindType {
		t.Fatalf("got kind %s, want Type", v.Kind())
	}
	if v.TypeValue().Kind() != rt.TypeString {
		t.Errorf("got type kind %s, want String", v.TypeValue().Kind())
	}
}
