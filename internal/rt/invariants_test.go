package rt

import "testing"

func sampleValues() []Value {
	return []Value{
		NoneValue,
		Int(0),
		Int(42),
		Int(-7),
		Uint(9),
		Float(3.5),
		Bool(true),
		Bool(false),
		NewString("hello"),
		NewList([]Value{Int(1), Int(2)}),
	}
}

// 1. Equality reflexivity: v == v and hash(v) == hash(v).
func TestEqualityReflexivity(t *testing.T) {
	for _, v := range sampleValues() {
		if !Equal(v, v) {
			t.Errorf("%v not equal to itself", v)
		}
		if Hash(v) != Hash(v) {
			t.Errorf("hash(%v) not stable across calls", v)
		}
	}
}

// 2. Equality/hash coherence: a == b => hash(a) == hash(b).
func TestEqualityHashCoherence(t *testing.T) {
	values := sampleValues()
	for _, a := range values {
		for _, b := range values {
			if Equal(a, b) && Hash(a) != Hash(b) {
				t.Errorf("Equal(%v, %v) but hashes differ: %d vs %d", a, b, Hash(a), Hash(b))
			}
		}
	}
}

func sampleTypes() []*Type {
	return []*Type{
		IntegerType,
		FloatType,
		StringType,
		BooleanType,
		AnyType,
		ListType(IntegerType),
		UnionOf(*IntegerType, *StringType),
		IntersectionOf(*IntegerType, *AnyType),
		Negate(BooleanType),
		FunctionType(TupleType([]Type{*IntegerType}, nil), IntegerType),
	}
}

// 3. Match self-identity: match(t, t) == Equal.
func TestMatchSelfIdentity(t *testing.T) {
	for _, ty := range sampleTypes() {
		if got := Match(ty, ty); got != Equal {
			t.Errorf("Match(%s, itself) = %s, want Equal", ty.Kind(), got)
		}
	}
}

// 4. Match commutativity on equality: match(a,b)==Equal <=> match(b,a)==Equal.
func TestMatchEqualityCommutes(t *testing.T) {
	types := sampleTypes()
	for _, a := range types {
		for _, b := range types {
			ab := Match(a, b) == Equal
			ba := Match(b, a) == Equal
			if ab != ba {
				t.Errorf("Match(%s,%s)==Equal is %v but Match(%s,%s)==Equal is %v", a.Kind(), b.Kind(), ab, b.Kind(), a.Kind(), ba)
			}
		}
	}
}

// 5. Union monotonicity: match(a, t) >= True => match(Union(a, ...), t) >= True.
func TestUnionMonotonicity(t *testing.T) {
	a := IntegerType
	other := StringType
	target := IntegerType
	if !Match(a, target).Matches() {
		t.Fatalf("precondition failed: Match(a, target) should already hold")
	}
	union := UnionOf(*a, *other)
	if !Match(union, target).Matches() {
		t.Errorf("Match(Union(a, other), target) should still hold once one operand matches")
	}
}

// Union's max-fold must seed at Unknown (the lattice bottom), not None,
// so that a Union of purely concrete operands matched against a typeclass
// target -- where matchByKind reports Unknown for a concrete matcher
// against a non-concrete target, for every operand -- comes out Unknown
// (undecidable) rather than being misreported as None (definitely no
// match). NoneType (the "matches nothing" typeclass) is non-concrete, so
// it forces exactly this path for both Integer and String operands.
func TestUnionMatch_AllUnknownOperandsSeedUnknownNotNone(t *testing.T) {
	union := UnionOf(*IntegerType, *StringType)
	got := Match(union, NoneType)
	if got != Unknown {
		t.Errorf("Match(Union(Integer, String), NoneType) = %v, want Unknown", got)
	}
}

// 6. Intersection antitonicity: match(a, t) < True for some operand => Intersection < True.
func TestIntersectionAntitonicity(t *testing.T) {
	a := IntegerType
	nonMatching := StringType
	target := IntegerType
	if Match(nonMatching, target).Matches() {
		t.Fatalf("precondition failed: nonMatching should not match target")
	}
	intersection := IntersectionOf(*a, *nonMatching)
	if Match(intersection, target).Matches() {
		t.Errorf("Match(Intersection(a, nonMatching), target) should fail once one operand fails")
	}
}

// 7. Not involution: match(Not(Not(a)), t) == match(a, t) for t of concrete kind.
func TestNotInvolution(t *testing.T) {
	a := IntegerType
	for _, target := range []*Type{IntegerType, StringType, FloatType} {
		direct := Match(a, target)
		doubled := Match(Negate(Negate(a)), target)
		if direct != doubled {
			t.Errorf("Match(a, %s)=%s but Match(Not(Not(a)), %s)=%s", target.Kind(), direct, target.Kind(), doubled)
		}
	}
}

// 8. Round-trip Value -> Type -> checkType: checkType(v, toType(v)) == true.
func TestValueTypeRoundTrip(t *testing.T) {
	for _, v := range sampleValues() {
		ty := ToType(v)
		if !CheckType(v, ty) {
			t.Errorf("CheckType(%v, ToType(%v)) = false, want true", v, v)
		}
	}
}

// 9. Dispatch stability: repeated Match calls against the same operands
// return the same result (the matcher has no hidden mutable state).
func TestMatchStability(t *testing.T) {
	a := UnionOf(*IntegerType, *FloatType)
	target := IntegerType
	first := Match(a, target)
	for i := 0; i < 10; i++ {
		if got := Match(a, target); got != first {
			t.Fatalf("Match result drifted on call %d: got %s, want %s", i, got, first)
		}
	}
}

func TestMatchByKind_ConcreteKindMismatchIsNone(t *testing.T) {
	if got := Match(FloatType, IntegerType); got != None {
		t.Errorf("Match(Float, Integer) = %s, want None", got)
	}
}

func TestMatchByKind_AnyAlwaysTrue(t *testing.T) {
	if got := Match(AnyType, IntegerType); got != True {
		t.Errorf("Match(Any, Integer) = %s, want True", got)
	}
}

func TestMatchBound_CovariantIntegerBeatsAny(t *testing.T) {
	intBound := TypeBound{Type: IntegerType, Variance: Covariant}
	anyBound := TypeBound{Type: AnyType, Variance: Covariant}
	target := IntegerType
	intScore := MatchBound(intBound, target)
	anyScore := MatchBound(anyBound, target)
	if intScore <= anyScore {
		t.Errorf("Integer-specific bound (%s) should outrank Any bound (%s) against an Integer argument", intScore, anyScore)
	}
}
