package rt

// Type is an algebraic description of a set of values, tagged by TypeKind
// and carrying a Properties bag regardless of kind.
type Type struct {
	kind       TypeKind
	properties *Properties

	// Function
	arguments  *Type // tuple type
	returnType *Type

	// Tuple
	elements []Type
	varargs  *Type // nil if not variadic

	// Reference / List / Set: element; Type: inner
	inner *Type

	// Table
	key   *Type
	value *Type

	// Composite
	fields map[string]Type

	// Union / Intersection
	operands []Type

	// Not: reuses inner

	// BaseType
	baseKind TypeKind

	// WithProperty: reuses inner + tag
	tag *PropertyTag

	// CustomMatcher
	typeMatcher  func(*Type) TypeMatch
	valueMatcher func(Value) bool
}

func (t *Type) Kind() TypeKind { return t.kind }

func (t *Type) Properties() *Properties {
	if t.properties == nil {
		t.properties = NewProperties()
	}
	return t.properties
}

func (t *Type) WithProperties(p *Properties) *Type {
	c := *t
	c.properties = p
	return &c
}

// --- concrete constructors ------------------------------------------------

func Atomic(k TypeKind) *Type { return &Type{kind: k} }

var (
	NoneValueType  = Atomic(TypeNoneValue)
	IntegerType    = Atomic(TypeInteger)
	UnsignedType   = Atomic(TypeUnsigned)
	FloatType      = Atomic(TypeFloat)
	BooleanType    = Atomic(TypeBoolean)
	StringType     = Atomic(TypeString)
	ExpressionType = Atomic(TypeExpression)
	StatementType  = Atomic(TypeStatement)
	ScopeType      = Atomic(TypeScope)
)

func FunctionType(args *Type, ret *Type) *Type {
	return &Type{kind: TypeFunction, arguments: args, returnType: ret}
}

func TupleType(elements []Type, varargs *Type) *Type {
	return &Type{kind: TypeTuple, elements: elements, varargs: varargs}
}

func ReferenceType(elem *Type) *Type { return &Type{kind: TypeReference, inner: elem} }
func ListType(elem *Type) *Type      { return &Type{kind: TypeList, inner: elem} }
func SetType(elem *Type) *Type       { return &Type{kind: TypeSet, inner: elem} }
func TableType(key, val *Type) *Type { return &Type{kind: TypeTable, key: key, value: val} }

func CompositeType(fields map[string]Type) *Type {
	copied := make(map[string]Type, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Type{kind: TypeComposite, fields: copied}
}

func MetaType(inner *Type) *Type { return &Type{kind: TypeType, inner: inner} }

// --- typeclass constructors ----------------------------------------------

var (
	AnyType  = Atomic(TypeAny)
	NoneType = Atomic(TypeNone) // the typeclass matching nothing, distinct from NoneValueType
)

// UnionOf builds a Union typeclass; operands must be non-empty (§3.5).
func UnionOf(operands ...Type) *Type {
	if len(operands) == 0 {
		panic("rt: Union requires at least one operand")
	}
	return &Type{kind: TypeUnion, operands: operands}
}

// IntersectionOf builds an Intersection typeclass; operands must be non-empty.
func IntersectionOf(operands ...Type) *Type {
	if len(operands) == 0 {
		panic("rt: Intersection requires at least one operand")
	}
	return &Type{kind: TypeIntersection, operands: operands}
}

func Negate(inner *Type) *Type { return &Type{kind: TypeNot, inner: inner} }

func BaseKindType(k TypeKind) *Type { return &Type{kind: TypeBaseType, baseKind: k} }

func WithPropertyType(inner *Type, tag *PropertyTag) *Type {
	return &Type{kind: TypeWithProperty, inner: inner, tag: tag}
}

// CustomMatcherType builds a host-supplied matcher. Either predicate may be
// nil; a nil typeMatcher makes match() against it return None, a nil
// valueMatcher makes checkType() against it fail.
func CustomMatcherType(typeMatcher func(*Type) TypeMatch, valueMatcher func(Value) bool) *Type {
	return &Type{kind: TypeCustomMatcher, typeMatcher: typeMatcher, valueMatcher: valueMatcher}
}

// --- accessors for the component kinds -----------------------------------

func (t *Type) Arguments() *Type  { return t.arguments }
func (t *Type) Return() *Type     { return t.returnType }
func (t *Type) Elements() []Type  { return t.elements }
func (t *Type) Varargs() *Type    { return t.varargs }
func (t *Type) Inner() *Type      { return t.inner }
func (t *Type) Key() *Type        { return t.key }
func (t *Type) Value() *Type      { return t.value }
func (t *Type) Fields() map[string]Type { return t.fields }
func (t *Type) Operands() []Type  { return t.operands }
func (t *Type) BaseKind() TypeKind { return t.baseKind }
func (t *Type) Tag() *PropertyTag { return t.tag }
func (t *Type) TypeMatcherFn() func(*Type) TypeMatch { return t.typeMatcher }
func (t *Type) ValueMatcherFn() func(Value) bool      { return t.valueMatcher }
