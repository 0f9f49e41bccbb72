package rt

import "math"

// Value is a tagged-union runtime datum. It carries no type tag beyond its
// Kind: packed primitives live directly in the data word, everything else
// is an owned (or, for NativeFunction, non-owning) pointer to a heap
// object. The struct is kept at two machine words plus the interface
// header so it stays cheap to copy and pass by value.
type Value struct {
	kind ValueKind
	data uint64 // Integer/Unsigned bits, Float bits (IEEE-754), or Boolean (0/1)
	obj  any    // heap payload for non-primitive kinds; nil otherwise
}

// Kind returns the value's ValueKind.
func (v Value) Kind() ValueKind { return v.kind }

// --- constructors -----------------------------------------------------

// NoneValue is the unit datum.
var NoneValue = Value{kind: KindNone}

func Int(v int64) Value      { return Value{kind: KindInteger, data: uint64(v)} }
func Uint(v uint64) Value    { return Value{kind: KindUnsigned, data: v} }
func Float(v float64) Value  { return Value{kind: KindFloat, data: math.Float64bits(v)} }
func Bool(v bool) Value {
	var d uint64
	if v {
		d = 1
	}
	return Value{kind: KindBoolean, data: d}
}

// --- heap payload types -------------------------------------------------

type listObj struct{ items []Value }
type arrayObj struct{ items []Value }
type stringObj struct{ bytes []byte }
type referenceObj struct{ cell Value }
type compositeObj struct{ fields map[string]Value }
type propertyReferenceObj struct {
	properties *Properties
	value      Value
}
type typeObj struct{ typ *Type }
type effectObj struct{ inner Value }
type setObj struct{ entries map[uint64][]Value } // bucketed by hash, linear probe within bucket
type tableObj struct {
	keys   map[uint64][]Value
	values map[uint64][]Value
}
type expressionObj struct{ expr any } // opaque: produced by the external parser
type statementObj struct{ stmt *Statement }
type scopeObj struct{ scope any } // opaque: concrete type lives in package frame, which imports rt

// NativeFunction is a non-owning callable: it accepts a slice of Value and
// returns a Value. Name is debug-only; Arity sizes the argument tuple that
// ToType reports for it. The evaluator does not check Arity before calling:
// each native checks its own argument count.
type NativeFunc struct {
	Name  string
	Arity int
	Call  func(args []Value) (Value, error)
}

// Function is an owned closure: a persistent Stack template plus the
// Instruction tree to run against a freshly-refreshed copy of it.
type Function struct {
	PersistentStack *Stack
	Instruction     *Instruction
}

func NewList(items []Value) Value       { return Value{kind: KindList, obj: &listObj{items: append([]Value{}, items...)}} }
func NewArray(items []Value) Value      { return Value{kind: KindArray, obj: &arrayObj{items: append([]Value{}, items...)}} }
func NewString(s string) Value          { return Value{kind: KindString, obj: &stringObj{bytes: []byte(s)}} }
func NewReference(cell Value) Value     { return Value{kind: KindReference, obj: &referenceObj{cell: cell}} }
func NewComposite(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Value{kind: KindComposite, obj: &compositeObj{fields: copied}}
}
func NewPropertyReference(props *Properties, value Value) Value {
	return Value{kind: KindPropertyReference, obj: &propertyReferenceObj{properties: props, value: value}}
}
func NewTypeValue(t *Type) Value   { return Value{kind: KindType, obj: &typeObj{typ: t}} }
func NewNativeFunction(f *NativeFunc) Value { return Value{kind: KindNativeFunction, obj: f} }
func NewFunction(f *Function) Value { return Value{kind: KindFunction, obj: f} }
func NewEffect(inner Value) Value   { return Value{kind: KindEffect, obj: &effectObj{inner: inner}} }
func NewSet() Value                 { return Value{kind: KindSet, obj: &setObj{entries: make(map[uint64][]Value)}} }
func NewTable() Value {
	return Value{kind: KindTable, obj: &tableObj{keys: make(map[uint64][]Value), values: make(map[uint64][]Value)}}
}
func NewExpression(expr any) Value { return Value{kind: KindExpression, obj: &expressionObj{expr: expr}} }
func NewStatementValue(s *Statement) Value { return Value{kind: KindStatement, obj: &statementObj{stmt: s}} }
func NewScopeValue(s any) Value     { return Value{kind: KindScope, obj: &scopeObj{scope: s}} }

// --- accessors ------------------------------------------------------------

func (v Value) AsInt() int64      { return int64(v.data) }
func (v Value) AsUint() uint64    { return v.data }
func (v Value) AsFloat() float64  { return math.Float64frombits(v.data) }
func (v Value) AsBool() bool      { return v.data == 1 }

func (v Value) listObj() *listObj           { return v.obj.(*listObj) }
func (v Value) arrayObj() *arrayObj         { return v.obj.(*arrayObj) }
func (v Value) stringObj() *stringObj       { return v.obj.(*stringObj) }
func (v Value) referenceObj() *referenceObj { return v.obj.(*referenceObj) }
func (v Value) compositeObj() *compositeObj { return v.obj.(*compositeObj) }

func (v Value) AsString() string { return string(v.stringObj().bytes) }
func (v Value) AsBytes() []byte  { return v.stringObj().bytes }

func (v Value) ListLen() int  { return len(v.listObj().items) }
func (v Value) ListGet(i int) Value { return v.listObj().items[i] }
func (v Value) ListAppend(item Value) { o := v.listObj(); o.items = append(o.items, item) }
func (v Value) ListItems() []Value { return v.listObj().items }

func (v Value) ArrayLen() int       { return len(v.arrayObj().items) }
func (v Value) ArrayGet(i int) Value { return v.arrayObj().items[i] }
func (v Value) ArrayItems() []Value { return v.arrayObj().items }

func (v Value) RefGet() Value      { return v.referenceObj().cell }
func (v Value) RefSet(val Value)   { v.referenceObj().cell = val }

func (v Value) CompositeFields() map[string]Value { return v.compositeObj().fields }
func (v Value) CompositeGet(name string) (Value, bool) {
	val, ok := v.compositeObj().fields[name]
	return val, ok
}

func (v Value) PropertyRefValue() Value       { return v.obj.(*propertyReferenceObj).value }
func (v Value) PropertyRefProperties() *Properties { return v.obj.(*propertyReferenceObj).properties }

func (v Value) TypeValue() *Type { return v.obj.(*typeObj).typ }

func (v Value) EffectInner() Value { return v.obj.(*effectObj).inner }

func (v Value) NativeFunction() *NativeFunc { return v.obj.(*NativeFunc) }
func (v Value) AsFunction() *Function       { return v.obj.(*Function) }

func (v Value) ExpressionPayload() any { return v.obj.(*expressionObj).expr }
func (v Value) StatementValue() *Statement { return v.obj.(*statementObj).stmt }
func (v Value) ScopeValue() any            { return v.obj.(*scopeObj).scope }

// IsNone reports whether v is the unit datum.
func (v Value) IsNone() bool { return v.kind == KindNone }
